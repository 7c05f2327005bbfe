// Package elastic keeps a searchable copy of the classes collection in Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// classDoc is the indexed shape; _id is carried as the document id, not in the source.
type classDoc struct {
	Name             string             `json:"name"`
	Image            string             `json:"image,omitempty"`
	InstructorName   string             `json:"instructorName"`
	InstructorEmail  string             `json:"email"`
	AvailableSeats   int                `json:"Available-seats"`
	Price            float64            `json:"price"`
	NumberOfStudents int                `json:"NumberOfStudents"`
	Status           entity.ClassStatus `json:"status,omitempty"`
}

type ClassIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewClassIndex(es *elasticsearch.Client, index string) *ClassIndex {
	return &ClassIndex{es: es, index: index}
}

func (x *ClassIndex) Index(ctx context.Context, c *entity.Class) error {
	b, err := json.Marshal(classDoc{
		Name:             c.Name,
		Image:            c.Image,
		InstructorName:   c.InstructorName,
		InstructorEmail:  c.InstructorEmail,
		AvailableSeats:   c.AvailableSeats,
		Price:            c.Price,
		NumberOfStudents: c.NumberOfStudents,
		Status:           c.Status,
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: c.ID.Hex(), Body: bytes.NewReader(b), Refresh: "false"}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over class name and instructor fields.
func (x *ClassIndex) Search(ctx context.Context, q string, size int) ([]entity.Class, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "instructorName", "email"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(ctx), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string   `json:"_id"`
				Source classDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Class, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		oid, _ := primitive.ObjectIDFromHex(h.ID)
		d := h.Source
		out = append(out, entity.Class{
			ID:               oid,
			Name:             d.Name,
			Image:            d.Image,
			InstructorName:   d.InstructorName,
			InstructorEmail:  d.InstructorEmail,
			AvailableSeats:   d.AvailableSeats,
			Price:            d.Price,
			NumberOfStudents: d.NumberOfStudents,
			Status:           d.Status,
		})
	}
	return out, nil
}

var _ application.ClassIndex = (*ClassIndex)(nil)
