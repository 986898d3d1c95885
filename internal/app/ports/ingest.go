package ports

import "time"

type IngestPort interface {
	Ingest(category, actor string, now time.Time) error
}
