package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type bulkUser struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=student teacher admin"`
}

type bulkUpsertReq struct {
	Users []bulkUser `json:"users" validate:"required,min=1,dive"`
}

// POST /admin/users/bulk
// Creates or updates accounts by username. Passwords are always re-hashed.
func BulkUpsertUsersHandler(dbc *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkUpsertReq
		if !decodeValid(w, r, &req) {
			return
		}
		tx, err := dbc.BeginTx(r.Context(), nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		now := time.Now().Unix()
		for _, u := range req.Users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			_, err = tx.ExecContext(r.Context(),
				`INSERT INTO users (id, username, password_hash, role, created_at)
				 VALUES ($1,$2,$3,$4,$5)
				 ON CONFLICT (username) DO UPDATE SET
				   password_hash=excluded.password_hash,
				   role=excluded.role`,
				uuid.NewString(), u.Username, string(hash), u.Role, now)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]int{"upserted": len(req.Users)})
	}
}

type userRow struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GET /admin/users
func ListUsersHandler(dbc *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := dbc.QueryContext(r.Context(),
			`SELECT id, username, role FROM users ORDER BY username`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		out := []userRow{}
		for rows.Next() {
			var u userRow
			if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, u)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{"users": out})
	}
}
