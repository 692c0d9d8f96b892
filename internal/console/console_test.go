package console

import "testing"

func TestWriteByteCallsWriteHook(t *testing.T) {
	var got []byte
	c := New(func(b byte) { got = append(got, b) }, func() bool { return false }, func() byte { return 0 })

	if err := c.WriteByte('x'); err != nil {
		t.Fatalf("WriteByte returned error: %v", err)
	}
	if len(got) != 1 || got[0] != 'x' {
		t.Errorf("got %v, want ['x']", got)
	}
}

func TestReadByteNotReadyReturnsFalse(t *testing.T) {
	c := New(func(byte) {}, func() bool { return false }, func() byte { return 0 })
	if _, ok := c.ReadByte(); ok {
		t.Fatal("ReadByte reported ok with no data ready")
	}
}

func TestReadByteReadyReturnsData(t *testing.T) {
	c := New(func(byte) {}, func() bool { return true }, func() byte { return 'z' })
	b, ok := c.ReadByte()
	if !ok {
		t.Fatal("ReadByte reported not ready when data was available")
	}
	if b != 'z' {
		t.Errorf("ReadByte() = %q, want 'z'", b)
	}
}
