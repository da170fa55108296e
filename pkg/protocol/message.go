// Package protocol defines the WebSocket messages exchanged between the Aura
// preview server and its input and render clients.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Client → Server messages
	TypePoint     MessageType = "point"      // Pointer sample
	TypeEndStroke MessageType = "end_stroke" // Finger or pencil lifted
	TypeResize    MessageType = "resize"     // Canvas size changed
	TypeReset     MessageType = "reset"      // Clear the canvas
	TypeBreathe   MessageType = "breathe"    // Start guided breathing

	// Server → Client messages
	TypeFrame MessageType = "frame" // Render snapshot

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

var knownTypes = map[MessageType]bool{
	TypePoint:     true,
	TypeEndStroke: true,
	TypeResize:    true,
	TypeReset:     true,
	TypeBreathe:   true,
	TypeFrame:     true,
	TypePing:      true,
	TypePong:      true,
}

// Known reports whether t is a defined message type.
func (t MessageType) Known() bool {
	return knownTypes[t]
}

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data any) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v any) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// Time returns the message timestamp, or the zero time when unset.
func (m *Message) Time() time.Time {
	if m.Timestamp == 0 {
		return time.Time{}
	}
	return time.UnixMilli(m.Timestamp)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if !msg.Type.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
	}
	return &msg, nil
}

// =============================================================================
// Client → Server Message Types
// =============================================================================

// PointData is one pointer sample in canvas points.
type PointData struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Pressure *float64 `json:"pressure,omitempty"` // 0-1, absent for fingers
	T        int64    `json:"t,omitempty"`        // Sample time, Unix milliseconds
}

// PressureOrDefault returns the reported pressure or the neutral 0.5.
func (p PointData) PressureOrDefault() float64 {
	if p.Pressure == nil {
		return 0.5
	}
	return *p.Pressure
}

// ResizeData is a canvas size in points.
type ResizeData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// =============================================================================
// Server → Client Message Types
// =============================================================================

// FrameData is one render snapshot.
type FrameData struct {
	Time      float64            `json:"time"` // Animation seconds
	Mood      string             `json:"mood"`
	Scores    map[string]float64 `json:"scores"`
	Particles []ParticleData     `json:"particles"`
	Phase     string             `json:"phase,omitempty"` // Breathing phase
	Prompt    string             `json:"prompt,omitempty"`
	Progress  float64            `json:"progress,omitempty"`
	Guide     *PositionData      `json:"guide,omitempty"`
}

// ParticleData is one particle as the renderer draws it.
type ParticleData struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
	Color   string  `json:"color"` // "#RRGGBB"
}

// PositionData is a canvas position.
type PositionData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
