package recorder

import "CryptoSentinel/internal/model"

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunRecord) error                                    { return nil }
func (n *NoopRecorder) RecordRecommendations(_ string, _ []*model.Recommendation) error { return nil }
func (n *NoopRecorder) Close() error                                                    { return nil }
