package app

import (
	"context"

	"wafersight/domain/wafer"
	"wafersight/internal/errors"
	"wafersight/internal/preview"
	"wafersight/ports"
)

// ReferenceService resolves an end-test code against the dataset's embedded
// reference specification table.
type ReferenceService struct {
	Reporter ports.Reporter
	Sink     ports.ArtifactSink
}

// Check resolves the code and, when a row is found, echoes it to the sink.
// A dataset without the LOLIMIT sentinel is fatal for this operation; a code
// with no matching TESTNO is a normal informational outcome.
func (s *ReferenceService) Check(ctx context.Context, ds *wafer.Dataset, code string) (wafer.ReferenceLimit, wafer.ReferenceOutcome, error) {
	if !ds.HasReference {
		return wafer.ReferenceLimit{}, wafer.ReferenceNotFound, errors.ReferenceTableMissing()
	}

	normalized := wafer.NormalizeCell(code)
	ports.Infof(s.Reporter, "checking End Test No.: %s", normalized)

	row, outcome := wafer.ResolveReference(normalized, ds.Reference)
	switch outcome {
	case wafer.ReferenceNotFound:
		ports.Infof(s.Reporter, "End Test No. %s not found in the TESTNO column", normalized)
		return row, outcome, nil
	case wafer.ReferenceFoundNoLimit:
		ports.Warnf(s.Reporter, "End Test No. %s found with no limit", normalized)
	default:
		ports.Infof(s.Reporter, "End Test No. %s found with limits", normalized)
	}

	ports.Infof(s.Reporter, "%s", preview.ReferenceRow(row))
	if err := s.Sink.WriteReferenceEcho(ctx, row); err != nil {
		return row, outcome, errors.Wrap(err, "failed to write reference echo")
	}
	return row, outcome, nil
}
