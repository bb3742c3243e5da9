package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var documentUploads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tenderguard_document_uploads_total",
	Help: "Document metadata submissions by outcome.",
}, []string{"outcome"})

const (
	outcomeCreated  = "created"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)
