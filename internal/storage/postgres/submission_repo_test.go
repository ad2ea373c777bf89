package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/joshu-sajeev/contactrelay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestSubmissionRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		sub     *models.Submission
		wantErr bool
		setup   func(db *gorm.DB)
	}{
		{
			name: "success case",
			sub: &models.Submission{
				RequestID:  "req-1",
				Name:       "Ada",
				Email:      "ada@example.com",
				Message:    "Hello",
				Provider:   "resend",
				Status:     "sent",
				ProviderID: "abc123",
				HTTPStatus: 200,
				Meta:       datatypes.JSON([]byte(`{"remote_ip":"10.0.0.1","user_agent":"curl"}`)),
			},
		},
		{
			name: "failed attempt keeps error text",
			sub: &models.Submission{
				Name:       "Bob",
				Email:      "bob@example.com",
				Message:    "Hi",
				Provider:   "resend",
				Status:     "failed",
				HTTPStatus: 429,
				Error:      "rate limited",
			},
		},
		{
			name: "error when db connection is closed",
			sub: &models.Submission{
				Name:     "Eve",
				Email:    "eve@example.com",
				Message:  "x",
				Provider: "resend",
				Status:   "sent",
			},
			setup: func(db *gorm.DB) {
				sqlDB, _ := db.DB()
				sqlDB.Close()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := SetupTestDB(t)
			repo := NewSubmissionRepository(db)

			if tt.setup != nil {
				tt.setup(db)
			}

			err := repo.Create(context.Background(), tt.sub)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "create submission")
				return
			}

			require.NoError(t, err)
			require.NotZero(t, tt.sub.ID)

			var saved models.Submission
			require.NoError(t, db.First(&saved, tt.sub.ID).Error)

			assert.Equal(t, tt.sub.Name, saved.Name)
			assert.Equal(t, tt.sub.Email, saved.Email)
			assert.Equal(t, tt.sub.Message, saved.Message)
			assert.Equal(t, tt.sub.Status, saved.Status)
			assert.Equal(t, tt.sub.ProviderID, saved.ProviderID)
			assert.Equal(t, tt.sub.HTTPStatus, saved.HTTPStatus)
			assert.Equal(t, tt.sub.Error, saved.Error)
			assert.False(t, saved.CreatedAt.IsZero())

			if len(saved.Meta) > 0 {
				var meta map[string]any
				require.NoError(t, json.Unmarshal(saved.Meta, &meta))
				assert.Equal(t, "10.0.0.1", meta["remote_ip"])
			}
		})
	}
}

func TestSubmissionRepository_Get(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	sub := &models.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi", Provider: "resend", Status: "sent", HTTPStatus: 200}
	require.NoError(t, repo.Create(ctx, sub))

	got, err := repo.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	_, err = repo.Get(ctx, 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestSubmissionRepository_ListRecent(t *testing.T) {
	db := SetupTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"first", "second", "third"} {
		sub := &models.Submission{
			Name: name, Email: name + "@example.com", Message: "m",
			Provider: "resend", Status: "sent", HTTPStatus: 200,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, sub))
	}

	subs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "third", subs[0].Name)
	assert.Equal(t, "second", subs[1].Name)

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
