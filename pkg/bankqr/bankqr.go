// Package bankqr resolves Vietnamese bank codes and formats VietQR payment
// image URLs for transfer payments.
package bankqr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	banksEndpoint = "https://api.vietqr.io/v2/banks"
	imageBaseURL  = "https://img.vietqr.io/image"
)

// knownBanks covers the banks small shops actually configure; the remote list
// only supplements it.
var knownBanks = map[string]string{
	"vietcombank":  "VCB",
	"vietinbank":   "ICB",
	"techcombank":  "TCB",
	"bidv":         "BIDV",
	"agribank":     "VBA",
	"mbbank":       "MB",
	"mb bank":      "MB",
	"acb":          "ACB",
	"vpbank":       "VPB",
	"tpbank":       "TPB",
	"sacombank":    "STB",
	"vib":          "VIB",
	"shb":          "SHB",
	"ocb":          "OCB",
	"msb":          "MSB",
	"hdbank":       "HDB",
	"seabank":      "SEAB",
	"lienvietbank": "LPB",
	"eximbank":     "EIB",
}

// Resolver resolves bank display names to VietQR short codes.
type Resolver struct {
	client *http.Client

	mu     sync.RWMutex
	remote map[string]string
}

// NewResolver creates a bank code resolver
func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type bankListResponse struct {
	Data []struct {
		Name      string `json:"name"`
		ShortName string `json:"shortName"`
		Code      string `json:"code"`
	} `json:"data"`
}

// Refresh fetches the remote bank list. Errors are non-fatal: the static
// table keeps working without it.
func (r *Resolver) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, banksEndpoint, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bank list request failed with status %d", resp.StatusCode)
	}

	var list bankListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return err
	}

	remote := make(map[string]string, len(list.Data)*2)
	for _, b := range list.Data {
		if b.Code == "" {
			continue
		}
		remote[normalize(b.Name)] = b.Code
		remote[normalize(b.ShortName)] = b.Code
	}

	r.mu.Lock()
	r.remote = remote
	r.mu.Unlock()
	return nil
}

// ResolveCode resolves a bank display name to its VietQR short code
func (r *Resolver) ResolveCode(name string) (string, error) {
	key := normalize(name)
	if key == "" {
		return "", fmt.Errorf("bank name is empty")
	}

	if code, ok := knownBanks[key]; ok {
		return code, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if code, ok := r.remote[key]; ok {
		return code, nil
	}
	for alias, code := range r.remote {
		if strings.Contains(alias, key) {
			return code, nil
		}
	}

	return "", fmt.Errorf("unknown bank %q", name)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// QRRequest describes a payment QR image to generate.
type QRRequest struct {
	BankCode      string
	AccountNumber string
	AccountHolder string
	Amount        int64 // whole currency units
	Description   string
}

// FormatQRURL builds the VietQR image URL for a payment request
func FormatQRURL(req QRRequest) (string, error) {
	if req.BankCode == "" || req.AccountNumber == "" {
		return "", fmt.Errorf("bank code and account number are required")
	}

	q := url.Values{}
	if req.Amount > 0 {
		q.Set("amount", fmt.Sprintf("%d", req.Amount))
	}
	if req.Description != "" {
		q.Set("addInfo", req.Description)
	}
	if req.AccountHolder != "" {
		q.Set("accountName", req.AccountHolder)
	}

	u := fmt.Sprintf("%s/%s-%s-compact2.png", imageBaseURL, req.BankCode, req.AccountNumber)
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u, nil
}
