package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise/wisetest"
)

type rpcResponse struct {
	ID     *int            `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// stdioSession drives a stdio server through a pair of pipes.
type stdioSession struct {
	t       *testing.T
	in      *io.PipeWriter
	scanner *bufio.Scanner
}

func (s *stdioSession) send(msg string) {
	s.t.Helper()
	if _, err := io.WriteString(s.in, msg+"\n"); err != nil {
		s.t.Fatalf("failed to write message: %v", err)
	}
}

// receive returns the next response, skipping server notifications.
func (s *stdioSession) receive() rpcResponse {
	s.t.Helper()
	for s.scanner.Scan() {
		var resp rpcResponse
		if err := json.Unmarshal(s.scanner.Bytes(), &resp); err != nil {
			s.t.Fatalf("invalid JSON-RPC line %q: %v", s.scanner.Text(), err)
		}
		if resp.ID != nil {
			return resp
		}
	}
	s.t.Fatalf("stdout closed before a response arrived: %v", s.scanner.Err())
	return rpcResponse{}
}

func TestServeStdio_Session(t *testing.T) {
	mockClient := &wisetest.MockedAPI{
		ListBalancesFunc: func(_ context.Context, profileID int64, types []string) ([]wise.Balance, error) {
			if profileID != 77 {
				t.Errorf("expected profile 77 from context, got %d", profileID)
			}
			return []wise.Balance{{ID: 1, Currency: "EUR", Type: types[0]}}, nil
		},
	}
	s, err := NewMCPServer(WiseMCPOptions{
		Client: mockClient,
		Configuration: &config.Configuration{
			Context: config.Context{ProfileID: "77"},
			Actions: config.Actions{config.ResourceBalances: {config.PermissionRead: true}},
		},
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ServeStdio(ctx, s, stdinR, stdoutW)
		_ = stdoutW.Close()
	}()

	session := &stdioSession{t: t, in: stdinW, scanner: bufio.NewScanner(stdoutR)}

	session.send(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`)
	initResp := session.receive()
	if initResp.Error != nil {
		t.Fatalf("initialize failed: %s", initResp.Error)
	}
	var initResult struct {
		ServerInfo struct {
			Name string `json:"name"`
		} `json:"serverInfo"`
		Instructions string `json:"instructions"`
	}
	if err := json.Unmarshal(initResp.Result, &initResult); err != nil {
		t.Fatalf("invalid initialize result: %v", err)
	}
	if initResult.ServerInfo.Name != serverName {
		t.Errorf("expected server name %q, got %q", serverName, initResult.ServerInfo.Name)
	}
	if !strings.Contains(initResult.Instructions, "Wise") {
		t.Error("expected server instructions to describe the Wise workflow")
	}

	session.send(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)

	session.send(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	var list struct {
		Tools []struct {
			Name        string         `json:"name"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(session.receive().Result, &list); err != nil {
		t.Fatalf("invalid tools/list result: %v", err)
	}
	if len(list.Tools) != 1 || list.Tools[0].Name != "list_balances" {
		t.Fatalf("expected only list_balances, got %+v", list.Tools)
	}
	if list.Tools[0].InputSchema["type"] != "object" {
		t.Errorf("unexpected input schema %v", list.Tools[0].InputSchema)
	}

	session.send(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"list_balances","arguments":{"types":"SAVINGS"}}}`)
	var call struct {
		IsError bool `json:"isError"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(session.receive().Result, &call); err != nil {
		t.Fatalf("invalid tools/call result: %v", err)
	}
	if call.IsError || len(call.Content) != 1 {
		t.Fatalf("unexpected tools/call result %+v", call)
	}
	var balances []wise.Balance
	if err := json.Unmarshal([]byte(call.Content[0].Text), &balances); err != nil {
		t.Fatalf("tool output is not a balance list: %v", err)
	}
	if len(balances) != 1 || balances[0].Type != "SAVINGS" {
		t.Errorf("unexpected balances %+v", balances)
	}

	session.send(`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"create_transfer","arguments":{}}}`)
	if resp := session.receive(); resp.Error == nil && !strings.Contains(string(resp.Result), `"isError":true`) {
		t.Errorf("expected filtered tool call to fail, got %s", resp.Result)
	}

	_ = stdinW.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected serve error: %v", err)
		}
	case <-ctx.Done():
		t.Fatal("stdio server did not stop after stdin was closed")
	}
}

func TestServe_HealthAndMetrics(t *testing.T) {
	s, err := NewMCPServer(WiseMCPOptions{Client: &wisetest.MockedAPI{}})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve a port: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("wise_mcp_tools_exposed 0\n"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, s, addr, metricsHandler)
	}()

	var resp *http.Response
	for range 50 {
		resp, err = http.Get("http://" + addr + healthEndpoint)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("health endpoint unreachable: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from health, got %d", resp.StatusCode)
	}

	resp, err = http.Get("http://" + addr + metricsEndpoint)
	if err != nil {
		t.Fatalf("metrics endpoint unreachable: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), "wise_mcp_tools_exposed") {
		t.Errorf("unexpected metrics body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected shutdown error: %v", err)
		}
	case <-time.After(defaultShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
