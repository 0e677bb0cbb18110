package discovery

import (
	"context"
	"testing"
)

func TestMergeAddresses(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		incoming []string
		want     []string
	}{
		{
			"AddNew",
			[]string{"192.168.1.10"},
			[]string{"fe80::1"},
			[]string{"192.168.1.10", "fe80::1"},
		},
		{
			"SkipDuplicates",
			[]string{"192.168.1.10"},
			[]string{"192.168.1.10", "192.168.1.11"},
			[]string{"192.168.1.10", "192.168.1.11"},
		},
		{
			"EmptyIncoming",
			[]string{"192.168.1.10"},
			nil,
			[]string{"192.168.1.10"},
		},
		{
			"EmptyExisting",
			nil,
			[]string{"10.0.0.1"},
			[]string{"10.0.0.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeAddresses(tt.existing, tt.incoming)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRemoveAddresses(t *testing.T) {
	tests := []struct {
		name      string
		addresses []string
		remove    []string
		want      []string
	}{
		{
			"RemoveOne",
			[]string{"192.168.1.10", "fe80::1"},
			[]string{"fe80::1"},
			[]string{"192.168.1.10"},
		},
		{
			"RemoveAll",
			[]string{"192.168.1.10"},
			[]string{"192.168.1.10"},
			[]string{},
		},
		{
			"RemoveUnknown",
			[]string{"192.168.1.10"},
			[]string{"10.0.0.1"},
			[]string{"192.168.1.10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeAddresses(tt.addresses, tt.remove)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewService(t *testing.T) {
	svc := newService(
		"OpenRGB on office-pc",
		"office-pc.local",
		6742,
		[]string{"192.168.1.10", "fe80::1"},
		[]string{"version=0.9"},
	)

	if svc.InstanceName != "OpenRGB on office-pc" {
		t.Errorf("InstanceName = %q", svc.InstanceName)
	}
	if svc.Host != "office-pc.local" {
		t.Errorf("Host = %q", svc.Host)
	}
	if svc.Port != 6742 {
		t.Errorf("Port = %d", svc.Port)
	}
	if len(svc.Addresses) != 2 {
		t.Errorf("Addresses = %v", svc.Addresses)
	}
	if svc.Version != "0.9" {
		t.Errorf("Version = %q, want %q", svc.Version, "0.9")
	}
}

func TestNewServiceNoTXT(t *testing.T) {
	svc := newService("OpenRGB Mock", "mock.local", 6742, nil, nil)

	if svc.Version != "" {
		t.Errorf("Version = %q, want empty", svc.Version)
	}
}

func TestBrowserStopRejectsBrowse(t *testing.T) {
	browser, err := NewMDNSBrowser(DefaultBrowserConfig())
	if err != nil {
		t.Fatalf("NewMDNSBrowser: %v", err)
	}

	browser.Stop()

	if _, err := browser.Browse(context.Background()); err == nil {
		t.Error("expected error browsing after Stop")
	}
}

func TestNewMDNSBrowserDefaultsTimeout(t *testing.T) {
	browser, err := NewMDNSBrowser(BrowserConfig{})
	if err != nil {
		t.Fatalf("NewMDNSBrowser: %v", err)
	}
	if browser.config.BrowseTimeout != BrowseTimeout {
		t.Errorf("BrowseTimeout = %v, want %v", browser.config.BrowseTimeout, BrowseTimeout)
	}
}

func TestNewMDNSAdvertiserDefaultsTTL(t *testing.T) {
	adv, err := NewMDNSAdvertiser(AdvertiserConfig{})
	if err != nil {
		t.Fatalf("NewMDNSAdvertiser: %v", err)
	}
	if adv.config.TTL != DefaultAdvertiserConfig().TTL {
		t.Errorf("TTL = %v, want %v", adv.config.TTL, DefaultAdvertiserConfig().TTL)
	}
}

func TestAdvertiserRegisterValidates(t *testing.T) {
	adv, err := NewMDNSAdvertiser(DefaultAdvertiserConfig())
	if err != nil {
		t.Fatalf("NewMDNSAdvertiser: %v", err)
	}

	if err := adv.Register(context.Background(), &DaemonInfo{}); err == nil {
		t.Error("expected validation error for empty instance name")
	}
}

func TestAdvertiserUpdateTXTBeforeRegister(t *testing.T) {
	adv, err := NewMDNSAdvertiser(DefaultAdvertiserConfig())
	if err != nil {
		t.Fatalf("NewMDNSAdvertiser: %v", err)
	}

	if err := adv.UpdateTXT(&DaemonInfo{InstanceName: "x"}); err != ErrNotFound {
		t.Errorf("UpdateTXT error = %v, want ErrNotFound", err)
	}
}
