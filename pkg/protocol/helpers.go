package protocol

import (
	"github.com/Hean-Yi/Aura/pkg/breathing"
	"github.com/Hean-Yi/Aura/pkg/session"
)

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewPointMessage creates a pointer sample message
func NewPointMessage(x, y, pressure float64) (*Message, error) {
	return NewMessage(TypePoint, PointData{X: x, Y: y, Pressure: &pressure})
}

// NewResizeMessage creates a canvas resize message
func NewResizeMessage(width, height float64) (*Message, error) {
	return NewMessage(TypeResize, ResizeData{Width: width, Height: height})
}

// NewFrameData converts a session frame into its wire form
func NewFrameData(f session.Frame) FrameData {
	data := FrameData{
		Time:      f.Time,
		Mood:      f.Mood.String(),
		Scores:    f.Scores.Map(),
		Particles: make([]ParticleData, len(f.Particles)),
	}
	for i, p := range f.Particles {
		data.Particles[i] = ParticleData{
			ID:      p.ID.String(),
			X:       p.Position.X,
			Y:       p.Position.Y,
			Size:    p.Size,
			Opacity: p.Opacity,
			Color:   p.Color.Hex(),
		}
	}
	if f.Breathing.Phase != breathing.Idle {
		data.Phase = f.Breathing.Phase.String()
		data.Prompt = f.Breathing.Prompt
		data.Progress = f.Breathing.Progress
	}
	if f.Guide != nil {
		data.Guide = &PositionData{X: f.Guide.X, Y: f.Guide.Y}
	}
	return data
}

// NewFrameMessage creates a frame message from a session frame
func NewFrameMessage(f session.Frame) (*Message, error) {
	return NewMessage(TypeFrame, NewFrameData(f))
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{
		ID:        id,
		Timestamp: 0, // Will be set by NewMessage
	})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetPointData extracts a pointer sample from a message
func (m *Message) GetPointData() (*PointData, error) {
	var data PointData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetResizeData extracts a canvas size from a message
func (m *Message) GetResizeData() (*ResizeData, error) {
	var data ResizeData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetFrameData extracts frame data from a message
func (m *Message) GetFrameData() (*FrameData, error) {
	var data FrameData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
