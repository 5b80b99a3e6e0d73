package domain

import (
	"image"
	"testing"
)

type fakeSurface string

func (f fakeSurface) ID() string { return string(f) }

func (fakeSurface) Present(image.Image) error { return nil }

func TestSurfaceSession_ZeroValue(t *testing.T) {
	var s SurfaceSession

	if s.Attached() {
		t.Error("zero session should not be attached")
	}
	if s.Handle() != nil {
		t.Errorf("Handle() = %v, want nil", s.Handle())
	}
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("size = %dx%d, want 0x0", s.Width(), s.Height())
	}
}

func TestSurfaceSession_AttachDetachKeepsSize(t *testing.T) {
	var s SurfaceSession

	s.Resize(100, 200)
	s.Attach(fakeSurface("S1"))
	if got := SurfaceID(s.Handle()); got != "S1" {
		t.Errorf("handle = %s, want S1", got)
	}

	s.Detach()
	if s.Attached() {
		t.Error("session still attached after Detach")
	}
	if s.Width() != 100 || s.Height() != 200 {
		t.Errorf("size after Detach = %dx%d, want 100x200", s.Width(), s.Height())
	}

	s.Attach(fakeSurface("S2"))
	if s.Width() != 100 || s.Height() != 200 {
		t.Errorf("size after re-Attach = %dx%d, want 100x200", s.Width(), s.Height())
	}
}

func TestSurfaceSession_Idempotent(t *testing.T) {
	var s SurfaceSession

	s.Detach()
	s.Detach()
	if s.Attached() {
		t.Error("double Detach attached the session")
	}

	s.Attach(fakeSurface("S1"))
	s.Attach(fakeSurface("S1"))
	if got := SurfaceID(s.Handle()); got != "S1" {
		t.Errorf("handle = %s, want S1", got)
	}
}

func TestSurfaceSession_Resize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"positive", 640, 480, 640, 480},
		{"zero width", 0, 480, 0, 480},
		{"negative clamps", -5, -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s SurfaceSession
			s.Resize(tt.w, tt.h)

			if s.Width() != tt.wantW || s.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", s.Width(), s.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSurfaceSession_ResizeBeforeAttach(t *testing.T) {
	var s SurfaceSession

	s.Resize(320, 240)
	s.Attach(fakeSurface("late"))

	if s.Width() != 320 || s.Height() != 240 {
		t.Errorf("size = %dx%d, want 320x240", s.Width(), s.Height())
	}
}

func TestSurfaceID_Nil(t *testing.T) {
	if got := SurfaceID(nil); got != "none" {
		t.Errorf("SurfaceID(nil) = %s, want none", got)
	}
}

func TestAnomaly_String(t *testing.T) {
	tests := []struct {
		a    Anomaly
		want string
	}{
		{AnomalyDisconnectUnbalanced, "disconnect_unbalanced"},
		{AnomalyResizeDetached, "resize_detached"},
		{AnomalyVisibleDetached, "visible_detached"},
		{AnomalyAttachDisconnected, "attach_disconnected"},
		{AnomalyVisibleDisconnected, "visible_disconnected"},
		{AnomalyDestroyUnbalanced, "destroy_unbalanced"},
		{Anomaly(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Anomaly(%d).String() = %s, want %s", tt.a, got, tt.want)
		}
	}
}
