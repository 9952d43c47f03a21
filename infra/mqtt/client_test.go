package mqtt

import (
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakePaho struct {
	connected  bool
	published  map[string][]byte
	subscribed map[string]paho.MessageHandler
	connectErr error
}

func newFakePaho() *fakePaho {
	return &fakePaho{
		published:  make(map[string][]byte),
		subscribed: make(map[string]paho.MessageHandler),
	}
}

func (f *fakePaho) IsConnected() bool { return f.connected }
func (f *fakePaho) Connect() paho.Token {
	f.connected = f.connectErr == nil
	return &fakeToken{err: f.connectErr}
}
func (f *fakePaho) Disconnect(uint) { f.connected = false }
func (f *fakePaho) Publish(topic string, _ byte, _ bool, payload interface{}) paho.Token {
	f.published[topic] = payload.([]byte)
	return &fakeToken{}
}
func (f *fakePaho) Subscribe(topic string, _ byte, cb paho.MessageHandler) paho.Token {
	f.subscribed[topic] = cb
	return &fakeToken{}
}

func withFakePaho(t *testing.T, fake *fakePaho) {
	t.Helper()
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return fake }
	t.Cleanup(func() { newMQTTClient = orig })
}

func TestNewClient_PublishSubscribe(t *testing.T) {
	fake := newFakePaho()
	withFakePaho(t, fake)

	cfg := Config{Broker: "tcp://localhost:1883", Username: "u", Password: "p"}
	cfg.SetDefaults()
	cli, err := NewClient(cfg)
	require.NoError(t, err)

	require.NoError(t, cli.Publish("t/1", []byte("x")))
	assert.Equal(t, []byte("x"), fake.published["t/1"])

	called := false
	require.NoError(t, cli.Subscribe("t/#", func(string, []byte) { called = true }))
	_, ok := fake.subscribed["t/#"]
	assert.True(t, ok)
	_ = called

	cli.Disconnect()
	assert.False(t, fake.connected)
}

func TestNewClient_ConnectError(t *testing.T) {
	fake := newFakePaho()
	fake.connectErr = assert.AnError
	withFakePaho(t, fake)

	_, err := NewClient(Config{Broker: "tcp://localhost:1883"})
	assert.Error(t, err)
}
