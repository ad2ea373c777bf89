package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/joshu-sajeev/contactrelay/internal/models"
	"github.com/joshu-sajeev/contactrelay/internal/storage/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func seededRepo(t *testing.T) *postgres.SubmissionRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Submission{}))

	repo := postgres.NewSubmissionRepository(db)
	for _, name := range []string{"Ada", "Bob", "Cy"} {
		require.NoError(t, repo.Create(context.Background(), &models.Submission{
			Name: name, Email: "x@example.com", Message: "m",
			Provider: "resend", Status: "sent", HTTPStatus: 200,
		}))
	}
	return repo
}

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     string
		checkOutput func(*testing.T, []byte)
	}{
		{
			name: "list with limit",
			args: []string{"list", "-n", "2"},
			checkOutput: func(t *testing.T, out []byte) {
				var subs []models.Submission
				require.NoError(t, json.Unmarshal(out, &subs))
				assert.Len(t, subs, 2)
			},
		},
		{
			name: "list default limit",
			args: []string{"list"},
			checkOutput: func(t *testing.T, out []byte) {
				var subs []models.Submission
				require.NoError(t, json.Unmarshal(out, &subs))
				assert.Len(t, subs, 3)
			},
		},
		{
			name: "show by id",
			args: []string{"show", "2"},
			checkOutput: func(t *testing.T, out []byte) {
				var sub models.Submission
				require.NoError(t, json.Unmarshal(out, &sub))
				assert.Equal(t, "Bob", sub.Name)
			},
		},
		{name: "show missing id", args: []string{"show", "99"}, wantErr: "submission not found"},
		{name: "show bad id", args: []string{"show", "abc"}, wantErr: "invalid ID"},
		{name: "no subcommand", args: nil, wantErr: "usage"},
		{name: "unknown subcommand", args: []string{"purge"}, wantErr: "usage"},
		{name: "bad list flag", args: []string{"list", "-n", "many"}, wantErr: "list:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), seededRepo(t), tt.args, &out)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.checkOutput(t, out.Bytes())
		})
	}
}
