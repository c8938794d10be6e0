// Package gatewaytest provides an in-memory gateway.Backend for tests.
package gatewaytest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/gateway"
)

// Op names a Backend operation so tests can inject behavior into it.
type Op string

const (
	OpFetchSummaries    Op = "FetchSummaries"
	OpFetchDetail       Op = "FetchDetail"
	OpRegisterServer    Op = "RegisterServer"
	OpFetchCapabilities Op = "FetchCapabilities"
	OpInvoke            Op = "Invoke"
)

// Hook runs at the start of an operation. A non-nil error is returned by the operation.
// Hooks may block, e.g. to simulate a slow backend.
type Hook func(ctx context.Context) error

// Backend is a concurrency-safe, in-memory gateway.Backend.
type Backend struct {
	mu           sync.Mutex
	summaries    []domain.ServerSummary
	details      map[string]domain.ServerDetail
	capabilities map[string]domain.Capabilities
	results      map[mcp.MCPMethod]json.RawMessage
	errs         map[Op]error
	hooks        map[Op]Hook
	calls        map[Op]int
	invocations  []gateway.Invocation
	nextID       int
}

var _ gateway.Backend = (*Backend)(nil)

// New returns an empty Backend.
func New() *Backend {
	return &Backend{
		details:      map[string]domain.ServerDetail{},
		capabilities: map[string]domain.Capabilities{},
		results:      map[mcp.MCPMethod]json.RawMessage{},
		errs:         map[Op]error{},
		hooks:        map[Op]Hook{},
		calls:        map[Op]int{},
	}
}

// AddServer appends a server. Its detail defaults to the summary's record and metrics.
func (b *Backend) AddServer(s domain.ServerSummary) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.summaries = append(b.summaries, s)
	if _, ok := b.details[s.Server.ID]; !ok {
		b.details[s.Server.ID] = domain.ServerDetail{Server: s.Server, Metrics: s.Metrics}
	}
	return b
}

// SetSummaries replaces every server summary.
func (b *Backend) SetSummaries(summaries []domain.ServerSummary) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.summaries = append([]domain.ServerSummary(nil), summaries...)
	return b
}

// SetDetail overrides the detail returned for a server.
func (b *Backend) SetDetail(d domain.ServerDetail) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.details[d.Server.ID] = d
	return b
}

// SetCapabilities sets the capabilities of a server.
func (b *Backend) SetCapabilities(serverID string, c domain.Capabilities) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.capabilities[serverID] = c
	return b
}

// SetResult sets the raw result returned by Invoke for a method.
func (b *Backend) SetResult(method mcp.MCPMethod, raw json.RawMessage) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.results[method] = raw
	return b
}

// FailWith makes op return err until cleared with a nil error.
func (b *Backend) FailWith(op Op, err error) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		delete(b.errs, op)
		return b
	}
	b.errs[op] = err
	return b
}

// OnCall installs a hook run at the start of op, replacing any previous hook.
func (b *Backend) OnCall(op Op, h Hook) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hooks[op] = h
	return b
}

// Calls returns how many times op was called.
func (b *Backend) Calls(op Op) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.calls[op]
}

// Invocations returns every invocation received, in order.
func (b *Backend) Invocations() []gateway.Invocation {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]gateway.Invocation(nil), b.invocations...)
}

// FetchSummaries implements gateway.Backend.
func (b *Backend) FetchSummaries(ctx context.Context) ([]domain.ServerSummary, error) {
	if err := b.enter(ctx, OpFetchSummaries); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]domain.ServerSummary(nil), b.summaries...), nil
}

// FetchDetail implements gateway.Backend.
func (b *Backend) FetchDetail(ctx context.Context, serverID string, serverName string) (domain.ServerDetail, error) {
	if strings.TrimSpace(serverID) == "" {
		return domain.ServerDetail{}, gateway.MissingParameter("serverId")
	}
	if strings.TrimSpace(serverName) == "" {
		return domain.ServerDetail{}, gateway.MissingParameter("serverName")
	}
	if err := b.enter(ctx, OpFetchDetail); err != nil {
		return domain.ServerDetail{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.details[serverID]
	if !ok {
		return domain.ServerDetail{}, gateway.NotFound(serverID)
	}
	return d, nil
}

// RegisterServer implements gateway.Backend.
func (b *Backend) RegisterServer(ctx context.Context, reg domain.Registration) (domain.ServerRecord, error) {
	if err := reg.Validate(); err != nil {
		return domain.ServerRecord{}, &gateway.Failure{Kind: gateway.KindBusiness, Code: "500", Message: err.Error(), Err: err}
	}
	if err := b.enter(ctx, OpRegisterServer); err != nil {
		return domain.ServerRecord{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextFreeID()
	record := domain.ServerRecord{
		ID:              id,
		Name:            strings.TrimSpace(reg.Name),
		TransportType:   reg.TransportType,
		Endpoint:        strings.TrimSpace(reg.Endpoint),
		LifecycleStatus: domain.LifecycleConnecting,
		HealthStatus:    domain.HealthUnknown,
		Description:     strings.TrimSpace(reg.Description),
		Version:         strings.TrimSpace(reg.Version),
	}

	b.summaries = append(b.summaries, domain.ServerSummary{Server: record})
	b.details[record.ID] = domain.ServerDetail{Server: record}

	return record, nil
}

// FetchCapabilities implements gateway.Backend.
func (b *Backend) FetchCapabilities(ctx context.Context, serverID string) (domain.Capabilities, error) {
	if err := b.enter(ctx, OpFetchCapabilities); err != nil {
		return domain.Capabilities{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.details[serverID]; !ok {
		return domain.Capabilities{}, gateway.NotFound(serverID)
	}
	return b.capabilities[serverID], nil
}

// Invoke implements gateway.Backend.
func (b *Backend) Invoke(ctx context.Context, serverID string, inv gateway.Invocation) (json.RawMessage, error) {
	if err := b.enter(ctx, OpInvoke); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.invocations = append(b.invocations, inv)

	if _, ok := b.details[serverID]; !ok {
		return nil, gateway.NotFound(serverID)
	}
	if inv.Method == mcp.MethodToolsCall {
		if _, ok := b.capabilities[serverID].Tool(inv.Name); !ok {
			return nil, &gateway.Failure{Kind: gateway.KindBusiness, Code: "500", Message: "Tool not found: " + inv.Name}
		}
	}

	if raw, ok := b.results[inv.Method]; ok {
		return raw, nil
	}
	return json.RawMessage(`{}`), nil
}

// nextFreeID returns the first "srv-N" not used by a known server. Callers must hold b.mu.
func (b *Backend) nextFreeID() string {
	for {
		b.nextID++
		id := fmt.Sprintf("srv-%d", b.nextID)
		if _, taken := b.details[id]; !taken {
			return id
		}
	}
}

func (b *Backend) enter(ctx context.Context, op Op) error {
	b.mu.Lock()
	b.calls[op]++
	hook := b.hooks[op]
	err := b.errs[op]
	b.mu.Unlock()

	if hook != nil {
		if hErr := hook(ctx); hErr != nil {
			return hErr
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
