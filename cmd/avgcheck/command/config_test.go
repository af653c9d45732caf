package command

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		json   string
		expErr string
	}{
		"minimal": {
			json: `{}`,
		},
		"full nats": {
			json: `{
				"nats": {"host": "127.0.0.1", "port": 4333, "start_timeout": "5s"},
				"transport": {"type": "nats", "subject_prefix": "g"},
				"catalog": {"source": "http", "timeout": "10s", "base_url": "https://www.habbo.com"},
				"correlation": {"style": "observer", "timeout": "1500ms"},
				"extension": {"command": "!price", "actor_id": 99, "always_suppress_clicks": true, "gate_projection": true,
					"templates": {"price": "{{ .Name | upper }}: {{ .Average }}"}}
			}`,
		},
		"websocket transport": {
			json: `{"transport": {"type": "websocket", "url": "ws://127.0.0.1:9092/ws", "reconnect_delay": "1s"}}`,
		},
		"websocket without url": {
			json:   `{"transport": {"type": "websocket"}}`,
			expErr: "url is required for the websocket transport",
		},
		"external nats with port": {
			json:   `{"nats": {"url": "nats://10.0.0.1:4222", "port": 4222}}`,
			expErr: "url cannot be combined with host or port",
		},
		"bad start timeout": {
			json:   `{"nats": {"start_timeout": "soon"}}`,
			expErr: "parsing start_timeout",
		},
		"file catalog without path": {
			json:   `{"catalog": {"source": "file"}}`,
			expErr: "path is required for the file catalog source",
		},
		"negative correlation timeout": {
			json:   `{"correlation": {"timeout": "-1s"}}`,
			expErr: "timeout must be positive",
		},
		"broken template": {
			json:   `{"extension": {"templates": {"toggle": "{{ .Enabled "}}}`,
			expErr: "templates",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var cfg Config
			if err := json.Unmarshal([]byte(tt.json), &cfg); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err := cfg.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_UnknownEnums(t *testing.T) {
	tests := map[string]struct {
		json   string
		expErr string
	}{
		"transport": {
			json:   `{"transport": {"type": "carrier-pigeon"}}`,
			expErr: "unknown transport type: carrier-pigeon",
		},
		"catalog source": {
			json:   `{"catalog": {"source": "ftp"}}`,
			expErr: "unknown catalog source: ftp",
		},
		"correlation style": {
			json:   `{"correlation": {"style": "psychic"}}`,
			expErr: "unknown correlation style: psychic",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var cfg Config
			err := json.Unmarshal([]byte(tt.json), &cfg)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestBuildWorkers(t *testing.T) {
	tests := map[string]struct {
		json       string
		expWorkers []string
	}{
		"embedded nats": {
			json:       `{"nats": {"port": -1}}`,
			expWorkers: []string{"extension", "nats", "transport"},
		},
		"external nats": {
			json:       `{"nats": {"url": "nats://127.0.0.1:4222"}, "correlation": {"style": "observer"}}`,
			expWorkers: []string{"extension", "transport"},
		},
		"websocket": {
			json:       `{"transport": {"type": "websocket", "url": "ws://127.0.0.1:9092"}, "catalog": {"source": "file", "path": "furnidata.json"}}`,
			expWorkers: []string{"extension", "transport"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &Config{}
			if err := json.Unmarshal([]byte(tt.json), cfg); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			workers, err := BuildWorkers(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var names []string
			for name := range workers {
				names = append(names, name)
			}
			sort.Strings(names)
			testutil.AssertEqual(t, "workers", names, tt.expWorkers)
		})
	}
}

func TestBuildWorkers_WrongConfigType(t *testing.T) {
	_, err := BuildWorkers("nope")
	testutil.AssertErrorContains(t, err, "unable to cast config")
}
