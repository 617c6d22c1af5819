// Package wafermap projects per-die test records onto a coordinate grid and
// colors each die by the classification mark resolved from its end-test code.
package wafermap

import (
	"wafersight/domain/wafer"
)

// BuildMarkIndex scans the full record set once and builds the end-test code
// to classification mark lookup. Records missing either value are skipped;
// duplicate end-test codes resolve last-write-wins in input order.
func BuildMarkIndex(records []wafer.TestRecord) map[string]string {
	index := make(map[string]string)
	for _, rec := range records {
		if rec.EndTest == "" || rec.Mark == "" {
			continue
		}
		index[rec.EndTest] = rec.Mark
	}
	return index
}
