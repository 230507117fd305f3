// Package export produces zip archives of journal data encoded as BSON
// collections. The layout is mongodump-compatible (db/<collection>.bson
// plus a manifest) so archives interoperate with Mongo-era tooling.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm"

	"github.com/doodle-journal/core/internal/models"
	"github.com/doodle-journal/core/internal/store"
)

const (
	archiveRootDir      = "doodle-journal"
	archiveDBDir        = archiveRootDir + "/db"
	archiveManifestFile = archiveRootDir + "/manifest.json"
	archiveFormat       = "doodle-journal-bson"
	archiveVersion      = 1
)

// backupTableNames are the tables the whole-store backup job dumps.
var backupTableNames = []string{
	"users",
	"posts",
	"comments",
	"reminders",
}

type manifest struct {
	Format      string    `json:"format"`
	Version     int       `json:"version"`
	Scope       string    `json:"scope"` // "owner" | "full"
	CreatedAt   time.Time `json:"created_at"`
	Collections []string  `json:"collections"`
}

// Service builds export archives. The owner-scoped archive works on any
// store backend; the whole-store dump needs the database handle and is
// only wired when the MySQL backend is active.
type Service struct {
	st store.Store
	db *gorm.DB
}

func NewService(st store.Store, db *gorm.DB) *Service {
	return &Service{st: st, db: db}
}

// OwnerArchive builds a zip of one owner's entries and reminders.
func (s *Service) OwnerArchive(ctx context.Context, ownerID string) (*bytes.Buffer, error) {
	posts, err := s.st.Posts().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	reminders, err := s.st.Reminders().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	collections := []string{"posts", "reminders"}
	if err := writeCollection(w, "posts", postDocs(posts)); err != nil {
		return nil, err
	}
	if err := writeCollection(w, "reminders", reminderDocs(reminders)); err != nil {
		return nil, err
	}
	if err := writeManifest(w, "owner", collections); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

// FullArchive dumps every table as BSON. Only available on the durable
// backend; the memory backend has nothing worth a nightly upload.
func (s *Service) FullArchive(ctx context.Context) (*bytes.Buffer, error) {
	if s.db == nil {
		return nil, fmt.Errorf("full archive requires the mysql backend")
	}

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	exported := make([]string, 0, len(backupTableNames))
	for _, table := range backupTableNames {
		var rows []map[string]interface{}
		if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
			continue
		}
		payload, err := encodeBSONDocs(mapsToDocs(rows))
		if err != nil {
			continue
		}
		f, err := w.Create(path.Join(archiveDBDir, table+".bson"))
		if err != nil {
			continue
		}
		if len(payload) > 0 {
			if _, err := f.Write(payload); err != nil {
				continue
			}
		}
		exported = append(exported, table)
	}

	if err := writeManifest(w, "full", exported); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

// ArchiveFilename names an archive after its creation instant.
func ArchiveFilename(now time.Time) string {
	return fmt.Sprintf("journal-export-%s.zip", now.Format("2006-01-02T15-04-05"))
}

func writeCollection(w *zip.Writer, name string, docs []map[string]interface{}) error {
	payload, err := encodeBSONDocs(docs)
	if err != nil {
		return err
	}
	f, err := w.Create(path.Join(archiveDBDir, name+".bson"))
	if err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := f.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

func writeManifest(w *zip.Writer, scope string, collections []string) error {
	data, err := json.Marshal(manifest{
		Format:      archiveFormat,
		Version:     archiveVersion,
		Scope:       scope,
		CreatedAt:   time.Now().UTC(),
		Collections: collections,
	})
	if err != nil {
		return err
	}
	f, err := w.Create(archiveManifestFile)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// postDocs flattens entries (comments embedded, original document shape)
// into BSON-ready maps.
func postDocs(posts []models.PostModel) []map[string]interface{} {
	docs := make([]map[string]interface{}, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		comments := make([]map[string]interface{}, 0, len(p.Comments))
		for j := range p.Comments {
			c := &p.Comments[j]
			comments = append(comments, map[string]interface{}{
				"_id":       c.ID,
				"userId":    c.AuthorID,
				"username":  c.AuthorUsername,
				"content":   c.Content,
				"createdAt": c.CreatedAt.UnixMilli(),
			})
		}
		docs = append(docs, map[string]interface{}{
			"_id":        p.ID,
			"userId":     p.OwnerID,
			"title":      p.Title,
			"content":    p.Content,
			"mood":       p.Mood,
			"tags":       []string(p.Tags),
			"category":   p.Category,
			"images":     []string(p.Images),
			"aiSummary":  p.AISummary,
			"colorTheme": string(p.ColorTheme),
			"comments":   comments,
			"createdAt":  p.CreatedAt.UnixMilli(),
			"updatedAt":  p.UpdatedAt.UnixMilli(),
		})
	}
	return docs
}

func reminderDocs(reminders []models.ReminderModel) []map[string]interface{} {
	docs := make([]map[string]interface{}, 0, len(reminders))
	for i := range reminders {
		r := &reminders[i]
		docs = append(docs, map[string]interface{}{
			"_id":           r.ID,
			"userId":        r.OwnerID,
			"title":         r.Title,
			"message":       r.Message,
			"scheduledTime": r.ScheduledTime,
			"isActive":      r.IsActive,
			"createdAt":     r.CreatedAt.UnixMilli(),
		})
	}
	return docs
}

func mapsToDocs(rows []map[string]interface{}) []map[string]interface{} {
	docs := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		doc := make(map[string]interface{}, len(row))
		for key, value := range row {
			doc[key] = normalizeValue(value)
		}
		docs = append(docs, doc)
	}
	return docs
}

func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, normalizeValue(item))
		}
		return out
	default:
		return value
	}
}

func encodeBSONDocs(docs []map[string]interface{}) ([]byte, error) {
	if len(docs) == 0 {
		return []byte{}, nil
	}
	buffer := bytes.NewBuffer(nil)
	for _, doc := range docs {
		b, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		if _, err := buffer.Write(b); err != nil {
			return nil, err
		}
	}
	return buffer.Bytes(), nil
}
