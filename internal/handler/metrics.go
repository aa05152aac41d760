package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_checkins_total",
		Help: "Successful check-ins.",
	})
	checkoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_checkouts_total",
		Help: "Successful check-outs.",
	})
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_registrations_total",
		Help: "Employees registered.",
	})
	loginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_login_failures_total",
		Help: "Rejected login attempts.",
	})
)
