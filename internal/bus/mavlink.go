package bus

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
)

// groundStationSystemID is the MAVLink system ID this tool identifies as.
const groundStationSystemID = 255

// MAVLink is a Feed backed by a live MAVLink connection. It decodes frames
// with the common dialect and publishes one event per inbound message,
// named by the message's MAVLink identifier (e.g. "HEARTBEAT").
type MAVLink struct {
	*Dispatcher
	node      *gomavlib.Node
	connected atomic.Bool
}

// NewMAVLink opens a MAVLink connection for the given URL. Supported
// schemes: tcpin://, tcpout://, udpin://, udpout://, serial://. An invalid
// URL or a failure to open the endpoint is a connection error.
func NewMAVLink(url string) (*MAVLink, error) {
	endpoint, err := parseConnectionURL(url)
	if err != nil {
		return nil, err
	}

	node, err := gomavlib.NewNode(gomavlib.NodeConf{
		Endpoints:   []gomavlib.EndpointConf{endpoint},
		Dialect:     common.Dialect,
		OutVersion:  gomavlib.V2,
		OutSystemID: groundStationSystemID,
	})
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}

	return &MAVLink{
		Dispatcher: NewDispatcher(),
		node:       node,
	}, nil
}

// Connected reports whether at least one frame has been decoded.
func (m *MAVLink) Connected() bool {
	return m.connected.Load()
}

// Run consumes node events until ctx is cancelled. Frame delivery order
// follows arrival order on the wire.
func (m *MAVLink) Run(ctx context.Context) error {
	defer m.node.Close()

	events := m.node.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			m.handleEvent(evt)
		}
	}
}

func (m *MAVLink) handleEvent(evt gomavlib.Event) {
	switch e := evt.(type) {
	case *gomavlib.EventFrame:
		if m.connected.CompareAndSwap(false, true) {
			log.Printf("first frame received from system %d", e.SystemID())
		}
		m.Publish(Event{
			Name:       messageName(e.Message()),
			ReceivedAt: time.Now(),
		})
	case *gomavlib.EventChannelOpen:
		log.Printf("channel open: %v", e.Channel)
	case *gomavlib.EventChannelClose:
		log.Printf("channel close: %v", e.Channel)
	case *gomavlib.EventParseError:
		log.Printf("parse error: %v", e.Error)
	}
}

// messageName derives the MAVLink message name from the decoded Go type:
// *common.MessageOpticalFlowRad becomes "OPTICAL_FLOW_RAD".
func messageName(msg any) string {
	t := reflect.TypeOf(msg)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := strings.TrimPrefix(t.Name(), "Message")

	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// parseConnectionURL maps a connection URL to a gomavlib endpoint.
func parseConnectionURL(url string) (gomavlib.EndpointConf, error) {
	scheme, rest, found := strings.Cut(url, "://")
	if !found || rest == "" {
		return nil, fmt.Errorf("invalid connection URL %q", url)
	}

	switch scheme {
	case "tcpin":
		return gomavlib.EndpointTCPServer{Address: rest}, nil
	case "tcpout":
		return gomavlib.EndpointTCPClient{Address: rest}, nil
	case "udpin":
		return gomavlib.EndpointUDPServer{Address: rest}, nil
	case "udpout":
		return gomavlib.EndpointUDPClient{Address: rest}, nil
	case "serial":
		idx := strings.LastIndexByte(rest, ':')
		if idx <= 0 || idx == len(rest)-1 {
			return nil, fmt.Errorf("serial URL %q must be serial://<device>:<baudrate>", url)
		}
		baud, err := strconv.Atoi(rest[idx+1:])
		if err != nil || baud <= 0 {
			return nil, fmt.Errorf("invalid baudrate in %q", url)
		}
		return gomavlib.EndpointSerial{Device: rest[:idx], Baud: baud}, nil
	default:
		return nil, fmt.Errorf("unsupported connection scheme %q", scheme)
	}
}
