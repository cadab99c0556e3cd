package postgres

import (
	"strings"
	"testing"
	"time"

	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

func TestSeedRows(t *testing.T) {
	rows, err := seedRows(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("seed rows: %v", err)
	}

	order := []string{"leagues", "teams", "players", "tours", "matches"}
	stage := 0
	for _, row := range rows {
		for stage < len(order) && order[stage] != row.table {
			stage++
		}
		if stage == len(order) {
			t.Fatalf("row %s %s out of parent-first order", row.table, row.key)
		}

		query, args, err := qb.InsertModel(row.table, row.model, "ON CONFLICT (public_id) DO NOTHING")
		if err != nil {
			t.Fatalf("build insert for %s %s: %v", row.table, row.key, err)
		}
		if !strings.HasPrefix(query, "INSERT INTO "+row.table+" (public_id, ") {
			t.Fatalf("unexpected query for %s: %s", row.table, query)
		}
		if args[0] != row.key {
			t.Fatalf("expected public_id %s first, got %v", row.key, args[0])
		}
	}
	if stage != len(order)-1 {
		t.Fatalf("expected every catalog table seeded, stopped at %s", order[stage])
	}
}
