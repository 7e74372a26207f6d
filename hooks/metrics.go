// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/crosschain"
)

type Metrics struct {
	messageCount *prometheus.CounterVec
	payloadBytes *prometheus.CounterVec

	totalMessages atomic.Uint64
	totalBytes    atomic.Uint64
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := Metrics{
		messageCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crosschain_message_count",
				Help: "Number of messages that reached a hook stage",
			},
			[]string{"stage", "source_chain_id", "destination_chain_id"},
		),
		payloadBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crosschain_payload_bytes",
				Help: "Payload bytes that reached a hook stage",
			},
			[]string{"stage", "source_chain_id", "destination_chain_id"},
		),
	}

	registerer.MustRegister(m.messageCount)
	registerer.MustRegister(m.payloadBytes)

	return &m
}

// Hook returns a hook counting messages at stage.
func (m *Metrics) Hook(stage crosschain.HookType) Hook {
	return WithName("metrics", HookFunc(func(msg *crosschain.Message, source, destination crosschain.ChainID) error {
		labels := prometheus.Labels{
			"stage":                stage.String(),
			"source_chain_id":      strconv.FormatUint(uint64(source), 10),
			"destination_chain_id": strconv.FormatUint(uint64(destination), 10),
		}
		m.messageCount.With(labels).Inc()
		m.payloadBytes.With(labels).Add(float64(len(msg.Payload)))
		m.totalMessages.Add(1)
		m.totalBytes.Add(uint64(len(msg.Payload)))
		return nil
	}))
}

// TotalMessages returns the number of messages counted across all stages.
func (m *Metrics) TotalMessages() uint64 { return m.totalMessages.Load() }

// TotalBytes returns the payload bytes counted across all stages.
func (m *Metrics) TotalBytes() uint64 { return m.totalBytes.Load() }
