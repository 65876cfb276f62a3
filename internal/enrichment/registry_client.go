package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// CompanyProfile is the subset of registry data the pipeline keeps.
type CompanyProfile struct {
	CompanyNumber  string `json:"company_number"`
	CompanyName    string `json:"company_name"`
	CompanyStatus  string `json:"company_status"`
	CompanyType    string `json:"type"`
	Jurisdiction   string `json:"jurisdiction"`
	DateOfCreation string `json:"date_of_creation"`
}

// RegistryClient looks up company filings in an external registry.
type RegistryClient interface {
	CompanyByNumber(ctx context.Context, number string) (*CompanyProfile, error)
}

type companiesHouseClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCompaniesHouseClient builds a registry client against the Companies
// House public API. The key goes in HTTP basic auth as the username.
func NewCompaniesHouseClient(baseURL, apiKey string) RegistryClient {
	return &companiesHouseClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *companiesHouseClient) CompanyByNumber(ctx context.Context, number string) (*CompanyProfile, error) {
	endpoint := fmt.Sprintf("%s/company/%s", c.baseURL, url.PathEscape(number))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("build registry request: %w", err))
	}
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("registry request: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperrors.NewNotFound("registry company", map[string]any{"company_number": number})
	default:
		return nil, apperrors.NewInternalError(fmt.Errorf("registry returned status %d", resp.StatusCode))
	}

	var profile CompanyProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("decode registry response: %w", err))
	}
	return &profile, nil
}
