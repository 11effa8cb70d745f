package pathkit

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestCallbackChangeToken(t *testing.T) {
	token := NewCallbackChangeToken()
	if token.HasChanged() {
		t.Fatal("expected fresh token to be unchanged")
	}

	var calls, removed atomic.Int32
	token.RegisterChangeCallback(func() { calls.Add(1) })
	unregister := token.RegisterChangeCallback(func() { removed.Add(1) })
	unregister()

	token.SignalChange()
	token.SignalChange()

	if !token.HasChanged() {
		t.Error("expected token to be changed")
	}
	if calls.Load() != 1 {
		t.Errorf("expected one callback, got %d", calls.Load())
	}
	if removed.Load() != 0 {
		t.Error("expected unregistered callback not to run")
	}
}

func TestNeverChangeToken(t *testing.T) {
	var token ChangeToken = NeverChangeToken{}
	if token.HasChanged() || token.ActiveChangeCallbacks() {
		t.Error("expected inert token")
	}
	token.RegisterChangeCallback(func() { t.Error("unexpected callback") })()
}

func TestOnChange(t *testing.T) {
	t.Run("runs action for every change", func(t *testing.T) {
		tokens := make(chan *CallbackChangeToken, 10)
		actions := make(chan struct{}, 10)

		cancel := OnChange(func() (ChangeToken, error) {
			token := NewCallbackChangeToken()
			tokens <- token
			return token, nil
		}, func() {
			actions <- struct{}{}
		})
		defer cancel()

		for i := 0; i < 2; i++ {
			select {
			case token := <-tokens:
				token.SignalChange()
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for token")
			}
			select {
			case <-actions:
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for action")
			}
		}
	})

	t.Run("stops on producer error", func(t *testing.T) {
		done := make(chan struct{})
		var calls atomic.Int32
		cancel := OnChange(func() (ChangeToken, error) {
			if calls.Add(1) == 1 {
				close(done)
			}
			return nil, errors.New("boom")
		}, func() {
			t.Error("unexpected action")
		})
		defer cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("producer not called")
		}
		time.Sleep(10 * time.Millisecond)
		if calls.Load() != 1 {
			t.Errorf("expected a single producer call, got %d", calls.Load())
		}
	})

	t.Run("inert tokens end the loop", func(t *testing.T) {
		var calls atomic.Int32
		cancel := OnChange(func() (ChangeToken, error) {
			calls.Add(1)
			return NeverChangeToken{}, nil
		}, func() {})
		defer cancel()

		time.Sleep(10 * time.Millisecond)
		if calls.Load() != 1 {
			t.Errorf("expected a single producer call, got %d", calls.Load())
		}
	})
}
