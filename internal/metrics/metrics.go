// Package metrics exposes Prometheus counters for notification delivery.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	InviteKindExternal = "external"
	InviteKindMember   = "member"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

var (
	promInvites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buoy_invites_sent_total",
			Help: "Total team invitations handed to the mail transport",
		},
		[]string{"kind"},
	)
	promAlertEmails = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "buoy_alert_emails_total",
			Help: "Total direct alert emails handed to the mail transport",
		},
	)
	promSMSBatches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "buoy_sms_batches_total",
			Help: "Total batched email-to-SMS dispatches",
		},
	)
	promSendFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buoy_send_failures_total",
			Help: "Total transport failures, by channel",
		},
		[]string{"channel"},
	)
	promQueueDrained = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "buoy_queue_drained_total",
			Help: "Total unique recipients drained from the pending notification queue",
		},
	)
)

func init() {
	prometheus.MustRegister(promInvites, promAlertEmails, promSMSBatches, promSendFailures, promQueueDrained)
}

func IncInvite(kind string)         { promInvites.WithLabelValues(kind).Inc() }
func IncAlertEmail()                { promAlertEmails.Inc() }
func IncSMSBatch()                  { promSMSBatches.Inc() }
func IncSendFailure(channel string) { promSendFailures.WithLabelValues(channel).Inc() }
func AddQueueDrained(n int)         { promQueueDrained.Add(float64(n)) }

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
