package store

import "context"

// NopEventRepo returns an EventRepo that records nothing. It is used when
// no event log database is configured.
func NopEventRepo() EventRepo {
	return nopEventRepo{}
}

type nopEventRepo struct{}

func (nopEventRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error { return nil }

func (nopEventRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMEvent, error) {
	return nil, nil
}

func (nopEventRepo) GetLLMEvent(context.Context, int) (*LLMEvent, error) { return nil, nil }

func (nopEventRepo) LLMUsageByPurpose(context.Context) ([]UsageByPurpose, error) {
	return nil, nil
}

func (nopEventRepo) LLMUsageByModel(context.Context) ([]UsageByModel, error) {
	return nil, nil
}
