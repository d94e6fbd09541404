package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InventoryRecordsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "molten_inventory_records_written_total",
		Help: "Appended inventory ledger records.",
	})

	CompleteItemReads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "molten_complete_item_reads_total",
		Help: "Complete item reads served by the composer.",
	})

	CatalogItemsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "molten_catalog_items_imported_total",
		Help: "Glass items created or replaced by catalog import.",
	})
)
