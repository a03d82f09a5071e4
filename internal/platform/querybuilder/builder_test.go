package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "endpoint", "payload").
		From("usage_log").
		Where(Eq("endpoint", "/player"), Expr("requested_at >= ?", "2026-01-01")).
		OrderBy("requested_at DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, endpoint, payload FROM usage_log WHERE endpoint = $1 AND requested_at >= $2 ORDER BY requested_at DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "/player" || args[1] != "2026-01-01" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("usage_log").
		Columns("endpoint", "payload").
		Values("/lineup", "{}").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO usage_log (endpoint, payload) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "/lineup" || args[1] != "{}" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Endpoint string `db:"endpoint"`
		Payload  string `db:"payload"`
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModel("usage_log", row{Endpoint: "/compare", Payload: `{"a":1}`}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO usage_log (endpoint, payload) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "/compare" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
