package bus

import (
	"testing"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
)

func TestParseConnectionURL(t *testing.T) {
	tests := []struct {
		url  string
		want gomavlib.EndpointConf
	}{
		{"tcpin://0.0.0.0:5760", gomavlib.EndpointTCPServer{Address: "0.0.0.0:5760"}},
		{"tcpout://192.168.1.12:5760", gomavlib.EndpointTCPClient{Address: "192.168.1.12:5760"}},
		{"udpin://0.0.0.0:14550", gomavlib.EndpointUDPServer{Address: "0.0.0.0:14550"}},
		{"udpout://127.0.0.1:14550", gomavlib.EndpointUDPClient{Address: "127.0.0.1:14550"}},
		{"serial:///dev/ttyUSB0:57600", gomavlib.EndpointSerial{Device: "/dev/ttyUSB0", Baud: 57600}},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := parseConnectionURL(tt.url)
			if err != nil {
				t.Fatalf("parseConnectionURL(%q) error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("parseConnectionURL(%q) = %#v, want %#v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseConnectionURLErrors(t *testing.T) {
	urls := []string{
		"",
		"localhost:14550",
		"http://localhost:14550",
		"serial:///dev/ttyUSB0",      // missing baudrate
		"serial:///dev/ttyUSB0:abc",  // non-numeric baudrate
		"serial:///dev/ttyUSB0:-300", // negative baudrate
		"tcpin://",
	}
	for _, url := range urls {
		if _, err := parseConnectionURL(url); err == nil {
			t.Errorf("parseConnectionURL(%q) succeeded, want error", url)
		}
	}
}

func TestMessageName(t *testing.T) {
	tests := []struct {
		msg  any
		want string
	}{
		{&common.MessageHeartbeat{}, "HEARTBEAT"},
		{&common.MessageOpticalFlow{}, "OPTICAL_FLOW"},
		{&common.MessageOpticalFlowRad{}, "OPTICAL_FLOW_RAD"},
		{&common.MessageDistanceSensor{}, "DISTANCE_SENSOR"},
		{&common.MessageScaledImu2{}, "SCALED_IMU2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := messageName(tt.msg); got != tt.want {
				t.Errorf("messageName(%T) = %q, want %q", tt.msg, got, tt.want)
			}
		})
	}
}
