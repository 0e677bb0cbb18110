package discovery_test

import (
	"strings"
	"testing"

	"github.com/orgb-protocol/orgb-go/pkg/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeDaemonTXT verifies the TXT record format for daemon announcements.
func TestEncodeDaemonTXT(t *testing.T) {
	info := &discovery.DaemonInfo{
		InstanceName: "OpenRGB on office-pc",
		Port:         6742,
		Version:      "0.9",
	}

	txt := discovery.EncodeDaemonTXT(info)

	assert.Equal(t, "0.9", txt[discovery.TXTKeyVersion])
}

// TestEncodeDaemonTXT_OmitsEmptyVersion verifies that absent fields produce no keys.
func TestEncodeDaemonTXT_OmitsEmptyVersion(t *testing.T) {
	info := &discovery.DaemonInfo{InstanceName: "OpenRGB Mock", Port: 6742}

	txt := discovery.EncodeDaemonTXT(info)

	assert.NotContains(t, txt, discovery.TXTKeyVersion)
	assert.Empty(t, txt)
}

// TestDecodeDaemonTXT verifies version extraction from TXT records.
func TestDecodeDaemonTXT(t *testing.T) {
	version := discovery.DecodeDaemonTXT(discovery.TXTRecordMap{discovery.TXTKeyVersion: "0.9"})
	assert.Equal(t, "0.9", version)

	version = discovery.DecodeDaemonTXT(discovery.TXTRecordMap{})
	assert.Empty(t, version)
}

// TestDaemonTXT_RoundTrip verifies that encoding survives the string form used on the wire.
func TestDaemonTXT_RoundTrip(t *testing.T) {
	info := &discovery.DaemonInfo{InstanceName: "OpenRGB on nas", Version: "0.9.1"}

	strs := discovery.TXTRecordsToStrings(discovery.EncodeDaemonTXT(info))
	version := discovery.DecodeDaemonTXT(discovery.StringsToTXTRecords(strs))

	assert.Equal(t, info.Version, version)
}

// TestTXTRecordsToStrings verifies the key=value string form.
func TestTXTRecordsToStrings(t *testing.T) {
	strs := discovery.TXTRecordsToStrings(discovery.TXTRecordMap{"version": "0.9"})

	require.Len(t, strs, 1)
	assert.Equal(t, "version=0.9", strs[0])
}

// TestStringsToTXTRecords verifies parsing of the string forms mDNS libraries emit.
func TestStringsToTXTRecords(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  discovery.TXTRecordMap
	}{
		{
			name:  "key value",
			input: []string{"version=0.9"},
			want:  discovery.TXTRecordMap{"version": "0.9"},
		},
		{
			name:  "value with equals",
			input: []string{"note=a=b"},
			want:  discovery.TXTRecordMap{"note": "a=b"},
		},
		{
			name:  "boolean flag",
			input: []string{"flag"},
			want:  discovery.TXTRecordMap{"flag": ""},
		},
		{
			name:  "empty string ignored",
			input: []string{""},
			want:  discovery.TXTRecordMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, discovery.StringsToTXTRecords(tt.input))
		})
	}
}

// TestValidateInstanceName verifies the mDNS instance name length rules.
func TestValidateInstanceName(t *testing.T) {
	assert.NoError(t, discovery.ValidateInstanceName("OpenRGB on office-pc"))
	assert.ErrorIs(t, discovery.ValidateInstanceName(""), discovery.ErrMissingRequired)

	long := strings.Repeat("x", discovery.MaxInstanceNameLen+1)
	assert.ErrorIs(t, discovery.ValidateInstanceName(long), discovery.ErrInstanceNameTooLong)

	exact := strings.Repeat("x", discovery.MaxInstanceNameLen)
	assert.NoError(t, discovery.ValidateInstanceName(exact))
}
