// Package discovery resolves backend endpoints from Consul.
package discovery

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	consul "github.com/hashicorp/consul/api"

	"github.com/lixenwraith/gamesvc-samples/logging"
)

// ErrNoHealthy is returned when the service has no passing instances
var ErrNoHealthy = errors.New("discovery: no healthy instances")

// NewConsulClient tries each comma-separated agent address until one reports a leader
func NewConsulClient(addrs string, log logging.Logger) (*consul.Client, error) {
	if log == nil {
		log = logging.Nop()
	}
	for _, node := range strings.Split(addrs, ",") {
		node = strings.TrimSpace(node)
		if node == "" {
			continue
		}
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.LogWarning("Consul %s: %v", node, err)
			continue
		}
		if _, err := client.Status().Leader(); err != nil {
			log.LogWarning("Consul %s failed health check: %v", node, err)
			continue
		}
		log.Log("Connected to Consul agent %s", node)
		return client, nil
	}
	return nil, fmt.Errorf("discovery: no consul agent available in %q", addrs)
}

// Resolver lists the healthy instances of one service
type Resolver struct {
	client  *consul.Client
	service string
	log     logging.Logger
}

// NewResolver creates a resolver for service
func NewResolver(client *consul.Client, service string, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{client: client, service: service, log: log}
}

// Endpoints returns "host:port" for every passing instance, sorted for stable failover order
// The service address falls back to the node address when unset
func (r *Resolver) Endpoints() ([]string, error) {
	entries, _, err := r.client.Health().Service(r.service, "", true, nil)
	if err != nil {
		return nil, fmt.Errorf("discovery: query %s: %w", r.service, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoHealthy, r.service)
	}

	endpoints := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Service == nil {
			continue
		}
		addr := e.Service.Address
		if addr == "" && e.Node != nil {
			addr = e.Node.Address
		}
		endpoints = append(endpoints, fmt.Sprintf("%s:%d", addr, e.Service.Port))
	}
	sort.Strings(endpoints)
	r.log.Log("Discovered %d %s endpoint(s)", len(endpoints), r.service)
	return endpoints, nil
}

// Endpoints connects to Consul at addrs and resolves service in one step
func Endpoints(addrs, service string, log logging.Logger) ([]string, error) {
	client, err := NewConsulClient(addrs, log)
	if err != nil {
		return nil, err
	}
	return NewResolver(client, service, log).Endpoints()
}
