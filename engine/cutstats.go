package engine

import "github.com/rs/zerolog"

// SearchStats counts visited nodes and each cutoff mechanism for one Play.
type SearchStats struct {
	Nodes            uint64
	QNodes           uint64
	TTHits           uint64
	TTMisses         uint64
	TTCutoffs        uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
	Timeouts         uint64
}

func (s SearchStats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("qnodes", s.QNodes).
		Uint64("tt-hits", s.TTHits).
		Uint64("tt-misses", s.TTMisses).
		Uint64("tt-cutoffs", s.TTCutoffs).
		Uint64("beta-cutoffs", s.BetaCutoffs).
		Uint64("q-stand-pat-cutoffs", s.QStandPatCutoffs).
		Uint64("q-beta-cutoffs", s.QBetaCutoffs).
		Uint64("timeouts", s.Timeouts)
}
