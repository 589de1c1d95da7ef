package content

import (
	"context"
	"database/sql"
	"time"
)

type Program struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Module struct {
	ID        string `json:"id"`
	ProgramID string `json:"program_id"`
	Title     string `json:"title"`
	Position  int    `json:"position"`
}

type Chapter struct {
	ID       string `json:"id"`
	ModuleID string `json:"module_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// Catalog is the minimal authoring surface: upserts for the program tree.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog { return &Catalog{db: db} }

func (c *Catalog) PutProgram(ctx context.Context, p Program) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO programs (id, title, created_at) VALUES ($1,$2,$3)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title`,
		p.ID, p.Title, time.Now().Unix())
	return err
}

func (c *Catalog) PutModule(ctx context.Context, m Module) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO modules (id, program_id, title, position) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, position=EXCLUDED.position`,
		m.ID, m.ProgramID, m.Title, m.Position)
	return err
}

func (c *Catalog) PutChapter(ctx context.Context, ch Chapter) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO chapters (id, module_id, title, position) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, position=EXCLUDED.position`,
		ch.ID, ch.ModuleID, ch.Title, ch.Position)
	return err
}

func (c *Catalog) ListPrograms(ctx context.Context) ([]Program, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, title FROM programs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Title); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
