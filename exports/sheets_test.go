package exports

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type sheetsStub struct {
	mu       sync.Mutex
	existing []string
	calls    []string
	written  [][]string
}

func (s *sheetsStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := r.URL.Path
	s.calls = append(s.calls, r.Method+" "+path)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/spreadsheets/sheet-1"):
		sheets := make([]map[string]any, 0, len(s.existing))
		for _, title := range s.existing {
			sheets = append(sheets, map[string]any{"properties": map[string]any{"title": title}})
		}
		json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "sheet-1", "sheets": sheets}) //nolint:errcheck
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		var vr struct {
			Values [][]string `json:"values"`
		}
		_ = json.Unmarshal(body, &vr)
		s.written = vr.Values
		io.WriteString(w, `{}`) //nolint:errcheck
	default:
		io.WriteString(w, `{}`) //nolint:errcheck
	}
}

func newTestSyncer(t *testing.T, stub *sheetsStub) *SheetsSyncer {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	s, err := NewSheetsSyncer(context.Background(), "sheet-1",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return s
}

func TestSheetsSyncer_Sync(t *testing.T) {
	stub := &sheetsStub{existing: []string{"Transactions"}}
	s := newTestSyncer(t, stub)

	table, err := Build(ViewPayments, sampleRecords())
	require.NoError(t, err)

	n, err := s.Sync(context.Background(), table)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Len(t, stub.written, 3)
	require.Equal(t, table.Header, stub.written[0])
	require.Equal(t, []string{"Byte Me", "Asha", "TXN123", "2026-03-02"}, stub.written[1])

	for _, c := range stub.calls {
		require.NotContains(t, c, ":batchUpdate", "existing tab is reused")
	}
	require.Contains(t, strings.Join(stub.calls, "\n"), ":clear")
}

func TestSheetsSyncer_CreatesMissingTab(t *testing.T) {
	stub := &sheetsStub{}
	s := newTestSyncer(t, stub)

	table, err := Build(ViewFull, sampleRecords())
	require.NoError(t, err)

	_, err = s.Sync(context.Background(), table)
	require.NoError(t, err)
	require.Contains(t, strings.Join(stub.calls, "\n"), ":batchUpdate")
}
