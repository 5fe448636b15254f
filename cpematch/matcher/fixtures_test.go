package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anchore/cpematch/cpematch/search"
	"github.com/anchore/cpematch/cpematch/store"
	"github.com/anchore/cpematch/cpematch/version"
	"github.com/anchore/cpematch/cpematch/vulnerability"
)

func newRecord(t *testing.T, id, cpeStr string, r version.Range, vulnerable bool) vulnerability.VulnerableSoftware {
	t.Helper()
	v, err := vulnerability.New(id, "CVE-"+id, cpeStr, r, vulnerable)
	require.NoError(t, err)
	return v
}

func testRecords(t *testing.T) []vulnerability.VulnerableSoftware {
	return []vulnerability.VulnerableSoftware{
		newRecord(t, "httpd-na", "cpe:2.3:a:apache:http_server:-:*:*:*:*:*:*:*", version.Range{}, true),
		newRecord(t, "httpd-range", "cpe:2.3:a:apache:http_server:*:*:*:*:*:*:*:*", version.Range{StartIncluding: "2.4.0", EndExcluding: "2.4.54"}, true),
		newRecord(t, "kernel", "cpe:2.3:o:linux:linux_kernel:*:*:*:*:*:*:*:*", version.Range{}, true),
		newRecord(t, "zlib", "cpe:2.3:a:zlib:zlib:*:*:*:*:*:*:*:*", version.Range{StartIncluding: "1.2.0", EndExcluding: "1.2.9"}, true),
		newRecord(t, "pascom", "cpe:2.3:a:*:pascom_cloud_phone_system:*:*:*:*:*:*:*:*", version.Range{}, true),
		newRecord(t, "nginx", "cpe:2.3:a:nginx:nginx:*:*:*:*:*:*:*:*", version.Range{}, false),
		newRecord(t, "libexpat", "cpe:2.3:a:libexpat_project:libexpat:*:*:*:*:*:*:*:*", version.Range{EndExcluding: "2.2.7"}, true),
	}
}

// newTestStore publishes a snapshot of the test records, with a search index unless withoutIndex is set.
func newTestStore(t *testing.T, withoutIndex bool) *store.Store {
	t.Helper()
	records := testRecords(t)

	var idx *search.Index
	if !withoutIndex {
		var err error
		idx, err = search.NewIndex(records)
		require.NoError(t, err)
	}

	s := store.New()
	s.Swap(store.NewSnapshot(vulnerability.NewMockProvider(records...), idx, len(records)))
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func acquire(t *testing.T, s *store.Store) *store.Snapshot {
	t.Helper()
	snap, err := s.Acquire()
	require.NoError(t, err)
	t.Cleanup(snap.Release)
	return snap
}
