// Package accesscontrol implements the authorization authority contract over
// its HTTP/JSON API. The rest of the service only sees model.AccessContext;
// the wire format and the circuit breaker live here.
package accesscontrol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker/v2"

	"github.com/tbessonov/securetodo-server/internal/config"
	"github.com/tbessonov/securetodo-server/internal/logger"
	"github.com/tbessonov/securetodo-server/internal/model"
)

var _ model.AccessContextFactory = (*Factory)(nil)

// Factory opens authority sessions. All sessions share one HTTP client and
// one circuit breaker; a failing authority trips every session at once.
type Factory struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	logger     *logger.Logger
}

// NewFactory creates a Factory from the authority configuration.
func NewFactory(cfg config.Authority, logger *logger.Logger) *Factory {
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "authority",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("authority circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	})

	return &Factory{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		logger:     logger,
	}
}

// NewContext opens a fresh, unauthenticated session.
func (f *Factory) NewContext(ctx context.Context) (model.AccessContext, error) {
	return &accessContext{factory: f}, nil
}

// do sends one request through the circuit breaker. Transport errors and 5xx
// responses count as breaker failures; 4xx responses are valid authority
// answers and are mapped to typed errors by the callers.
func (f *Factory) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	return f.breaker.Execute(func() (*http.Response, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", err)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, f.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("authority request failed: %w", err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("authority returned HTTP %d", resp.StatusCode)
		}

		return resp, nil
	})
}

var _ model.AccessContext = (*accessContext)(nil)

// accessContext is one authority session. The token is set by Authenticate;
// an anonymous session may still create resources (self-registration).
type accessContext struct {
	factory  *Factory
	token    string
	resource model.Resource
}

type permissionPayload struct {
	Name            string `json:"name"`
	WithGrantOption bool   `json:"with_grant_option,omitempty"`
}

func permissionPayloads(permissions []model.Permission) []permissionPayload {
	out := make([]permissionPayload, 0, len(permissions))
	for _, p := range permissions {
		out = append(out, permissionPayload{Name: p.Name, WithGrantOption: p.WithGrantOption})
	}
	return out
}

func (c *accessContext) Authenticate(ctx context.Context, resource model.Resource, credentials model.Credentials) error {
	body := struct {
		ResourceID string `json:"resource_id"`
		Password   string `json:"password"`
	}{ResourceID: resource.ExternalID, Password: credentials.Password}

	resp, err := c.factory.do(ctx, http.MethodPost, "/sessions", "", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Any rejection collapses into a single authentication failure so the
	// caller cannot tell an unknown resource from a wrong password.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return model.ErrAuthenticationFailed
	}

	var session struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return fmt.Errorf("failed to decode session response: %w", err)
	}

	c.token = session.Token
	c.resource = resource

	return nil
}

func (c *accessContext) CreateResource(ctx context.Context, resourceClass, domain, externalID string, credentials *model.Credentials) (model.Resource, error) {
	body := struct {
		ResourceClass string `json:"resource_class"`
		Domain        string `json:"domain"`
		ExternalID    string `json:"external_id"`
		Password      string `json:"password,omitempty"`
	}{ResourceClass: resourceClass, Domain: domain, ExternalID: externalID}
	if credentials != nil {
		body.Password = credentials.Password
	}

	resp, err := c.factory.do(ctx, http.MethodPost, "/resources", c.token, body)
	if err != nil {
		return model.Resource{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return model.ResourceByExternalID(externalID), nil
	case http.StatusConflict:
		return model.Resource{}, model.ErrDuplicateExternalID
	case http.StatusBadRequest:
		return model.Resource{}, model.NewInvalidInput("%s", errorMessage(resp.Body, "invalid resource request"))
	default:
		return model.Resource{}, fmt.Errorf("authority rejected resource creation with HTTP %d", resp.StatusCode)
	}
}

func (c *accessContext) DeleteResource(ctx context.Context, resource model.Resource) error {
	resp, err := c.factory.do(ctx, http.MethodDelete, "/resources/"+url.PathEscape(resource.ExternalID), c.token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("authority rejected resource deletion with HTTP %d", resp.StatusCode)
	}

	return nil
}

func (c *accessContext) GrantResourcePermissions(ctx context.Context, grantee, target model.Resource, permissions ...model.Permission) error {
	body := struct {
		GranteeID   string              `json:"grantee_id"`
		TargetID    string              `json:"target_id"`
		Permissions []permissionPayload `json:"permissions"`
	}{GranteeID: grantee.ExternalID, TargetID: target.ExternalID, Permissions: permissionPayloads(permissions)}

	resp, err := c.factory.do(ctx, http.MethodPost, "/grants", c.token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusForbidden:
		return model.NewNotAuthorized("%s", errorMessage(resp.Body, "not authorized to grant"))
	case http.StatusBadRequest, http.StatusNotFound:
		return model.NewInvalidInput("%s", errorMessage(resp.Body, "invalid grant request"))
	default:
		return fmt.Errorf("authority rejected grant with HTTP %d", resp.StatusCode)
	}
}

func (c *accessContext) AssertResourcePermissions(ctx context.Context, subject, target model.Resource, permissions ...model.Permission) error {
	body := struct {
		SubjectID   string              `json:"subject_id"`
		TargetID    string              `json:"target_id"`
		Permissions []permissionPayload `json:"permissions"`
	}{SubjectID: subject.ExternalID, TargetID: target.ExternalID, Permissions: permissionPayloads(permissions)}

	resp, err := c.factory.do(ctx, http.MethodPost, "/assertions", c.token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusForbidden:
		return model.NewNotAuthorized("%s", errorMessage(resp.Body, "permission denied"))
	case http.StatusBadRequest, http.StatusNotFound:
		return model.NewInvalidInput("%s", errorMessage(resp.Body, "invalid assertion request"))
	default:
		return fmt.Errorf("authority rejected assertion with HTTP %d", resp.StatusCode)
	}
}

func (c *accessContext) ResourcesByPermission(ctx context.Context, subject model.Resource, resourceClass string, permission model.Permission) ([]model.Resource, error) {
	query := url.Values{}
	query.Set("subject_id", subject.ExternalID)
	query.Set("resource_class", resourceClass)
	query.Set("permission", permission.Name)

	resp, err := c.factory.do(ctx, http.MethodGet, "/resources?"+query.Encode(), c.token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authority rejected resource query with HTTP %d", resp.StatusCode)
	}

	var result struct {
		Resources []struct {
			ExternalID string `json:"external_id"`
		} `json:"resources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode resource query response: %w", err)
	}

	resources := make([]model.Resource, 0, len(result.Resources))
	for _, r := range result.Resources {
		resources = append(resources, model.ResourceByExternalID(r.ExternalID))
	}

	return resources, nil
}

func (c *accessContext) SessionResource() model.Resource {
	return c.resource
}

// errorMessage extracts the authority's error message, falling back when the
// body is not the expected JSON shape.
func errorMessage(body io.Reader, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Message == "" {
		return fallback
	}
	return payload.Message
}
