package db

import "testing"

func TestDialectPlaceholders(t *testing.T) {
	if got := SQLite.Placeholders(1, 3); got != "?, ?, ?" {
		t.Fatalf("sqlite placeholders = %q", got)
	}
	if got := Postgres.Placeholders(2, 3); got != "$2, $3, $4" {
		t.Fatalf("postgres placeholders = %q", got)
	}
}

func TestOpenSQLiteInTempDir(t *testing.T) {
	conn, err := OpenSQLite(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer conn.Close()

	var one int
	if err := conn.QueryRow(`SELECT 1`).Scan(&one); err != nil || one != 1 {
		t.Fatalf("SELECT 1 = %d, %v", one, err)
	}
}
