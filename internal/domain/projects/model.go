package projects

import "time"

// Entry — запись журнала работ. Использованное стекло лежит отдельными
// строками Glass, в журнал остатков они не пишутся.
type Entry struct {
	ID        int64
	Title     string
	Notes     string
	Date      time.Time
	Glass     []GlassLine
	CreatedAt time.Time
}

type GlassLine struct {
	ItemKey  string
	Quantity float64
}
