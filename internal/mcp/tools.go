package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/hyprgrid/internal/placement"
	"github.com/1broseidon/hyprgrid/internal/tiling"
)

func (s *Server) handleApplyPosition(ctx context.Context, _ *mcpsdk.CallToolRequest, args ApplyPositionInput) (*mcpsdk.CallToolResult, AppliedOutput, error) {
	preset, code := strings.TrimSpace(args.Preset), strings.TrimSpace(args.Code)
	if ref := strings.TrimSpace(args.Ref); ref != "" {
		preset, code = s.orch.Config().ParseRef(ref)
	}
	if code == "" {
		return nil, AppliedOutput{}, fmt.Errorf("ref or code is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.orch.ApplyPositionByCode(ctx, preset, code)
	if err != nil {
		s.log.Warn("apply_position failed", "preset", preset, "code", code, "kind", placement.KindOf(err), "error", err)
		return nil, AppliedOutput{}, err
	}
	return nil, appliedOutput(applied), nil
}

func (s *Server) handleApplyGridPosition(ctx context.Context, _ *mcpsdk.CallToolRequest, args ApplyGridPositionInput) (*mcpsdk.CallToolResult, AppliedOutput, error) {
	spec := tiling.PositionSpec{
		X:        args.X,
		Y:        args.Y,
		Width:    args.Width,
		Height:   args.Height,
		Centered: args.Centered,
		Scale:    args.Scale,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.orch.ApplyGridPosition(ctx, spec)
	if err != nil {
		s.log.Warn("apply_grid_position failed", "kind", placement.KindOf(err), "error", err)
		return nil, AppliedOutput{}, err
	}
	return nil, appliedOutput(applied), nil
}

func (s *Server) handleResetWindowState(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ResetWindowStateInput) (*mcpsdk.CallToolResult, ResetWindowStateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.orch.ResetWindowState(ctx); err != nil {
		return nil, ResetWindowStateOutput{}, err
	}
	return nil, ResetWindowStateOutput{Reset: true}, nil
}

func (s *Server) handleListPresets(_ context.Context, _ *mcpsdk.CallToolRequest, args ListPresetsInput) (*mcpsdk.CallToolResult, ListPresetsOutput, error) {
	cfg := s.orch.Config()
	out := ListPresetsOutput{
		Rows:          cfg.Grid.Rows,
		Columns:       cfg.Grid.Columns,
		Gaps:          cfg.Grid.Gaps,
		DefaultPreset: cfg.DefaultPreset,
		Presets:       []PresetInfo{},
	}

	names := cfg.PresetNames()
	if name := strings.TrimSpace(args.Preset); name != "" {
		if _, ok := cfg.Presets[name]; !ok {
			return nil, ListPresetsOutput{}, fmt.Errorf("%w: unknown preset %q; available: %v", placement.ErrPositionNotFound, name, names)
		}
		names = []string{name}
	}

	for _, name := range names {
		preset := cfg.Presets[name]
		info := PresetInfo{Name: name, Default: name == cfg.DefaultPreset}
		for _, code := range preset.Codes() {
			p := preset[code]
			info.Positions = append(info.Positions, PositionInfo{
				Code:     code,
				X:        p.X,
				Y:        p.Y,
				Width:    p.Width,
				Height:   p.Height,
				Centered: p.Centered,
				Scale:    p.Scale,
			})
		}
		out.Presets = append(out.Presets, info)
	}
	return nil, out, nil
}

func (s *Server) handleTestAllPositions(ctx context.Context, _ *mcpsdk.CallToolRequest, args TestAllPositionsInput) (*mcpsdk.CallToolResult, TestAllPositionsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := TestAllPositionsOutput{Steps: []TestStepInfo{}}
	ok, err := s.orch.RunPresetTest(ctx, strings.TrimSpace(args.Preset), func(step placement.TestStep) {
		out.Preset = step.Preset
		info := TestStepInfo{Code: step.Code, OK: step.Err == nil, Attempts: step.Applied.Attempts}
		if step.Err != nil {
			info.Error = step.Err.Error()
		}
		out.Steps = append(out.Steps, info)
	})
	if err != nil {
		return nil, TestAllPositionsOutput{}, err
	}
	out.OK = ok
	return nil, out, nil
}

func appliedOutput(a placement.Applied) AppliedOutput {
	out := AppliedOutput{
		Strategy: string(a.Strategy),
		X:        a.Rect.X,
		Y:        a.Rect.Y,
		Width:    a.Rect.Width,
		Height:   a.Rect.Height,
		Window:   string(a.Handle),
		Attempts: a.Attempts,
		Verified: a.Verified,
	}
	for _, w := range a.Warnings {
		msg := ""
		if w.Err != nil {
			msg = w.Err.Error()
		}
		out.Warnings = append(out.Warnings, WarningInfo{Kind: w.Kind.String(), Message: msg})
	}
	return out
}
