package api

import (
	"context"
	"fmt"

	"drr/internal/domain"
	"drr/internal/validate"
)

// Domains lists every monitored domain and certificate of the company
func (c *Client) Domains(ctx context.Context) ([]domain.Record, error) {
	var out []domain.Record
	if err := c.get(ctx, "/domains/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddDomain starts monitoring a domain registration. The name is normalized
// and rejected locally when it cannot be valid.
func (c *Client) AddDomain(ctx context.Context, name string) (domain.Record, error) {
	return c.addRecord(ctx, "/domains/add-domain", name)
}

// AddSSL starts monitoring the certificate served for name
func (c *Client) AddSSL(ctx context.Context, name string) (domain.Record, error) {
	return c.addRecord(ctx, "/domains/add-ssl", name)
}

func (c *Client) addRecord(ctx context.Context, path, name string) (domain.Record, error) {
	normalized, err := validate.DomainName(name)
	if err != nil {
		return domain.Record{}, &Error{Status: 422, Detail: err.Error()}
	}
	var rec domain.Record
	err = c.post(ctx, path, map[string]string{"name": normalized}, &rec)
	return rec, err
}

// DeleteDomain stops monitoring a record
func (c *Client) DeleteDomain(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/domains/%d", id), nil)
}

// CheckDomain forces a re-check of the record's expiry and returns the
// refreshed record.
func (c *Client) CheckDomain(ctx context.Context, id int64) (domain.Record, error) {
	var rec domain.Record
	err := c.patch(ctx, fmt.Sprintf("/domains/%d/check", id), nil, &rec)
	return rec, err
}
