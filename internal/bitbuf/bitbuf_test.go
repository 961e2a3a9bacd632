package bitbuf

import "testing"

func TestInsertExtractRoundTrip(t *testing.T) {
	b := New(32)
	b.Insert(0xABCD, 0, 16)
	b.Insert(0x3, 16, 2)
	if got := b.Extract(0, 16); got != 0xABCD {
		t.Fatalf("Extract(0,16) = %#x, want %#x", got, 0xABCD)
	}
	if got := b.Extract(16, 2); got != 0x3 {
		t.Fatalf("Extract(16,2) = %#x, want %#x", got, 0x3)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	unpacked := []uint8{1, 0, 1, 1, 0, 0, 1, 0, 1}
	packed := Pack(unpacked)
	back := Unpack(packed, len(unpacked))
	for i := range unpacked {
		if back[i] != unpacked[i] {
			t.Fatalf("bit %d: got %d, want %d", i, back[i], unpacked[i])
		}
	}
}

func TestMSBFirstOrdering(t *testing.T) {
	b := FromBytes([]byte{0b1000_0000}, 8)
	if b.Bit(0) != 1 {
		t.Fatal("bit 0 should be the MSB of the first byte")
	}
	for i := 1; i < 8; i++ {
		if b.Bit(i) != 0 {
			t.Fatalf("bit %d should be zero", i)
		}
	}
}

func TestSetBit(t *testing.T) {
	b := New(8)
	b.SetBit(3, 1)
	if b.Bit(3) != 1 {
		t.Fatal("SetBit did not set the expected bit")
	}
	if b.Bit(2) != 0 || b.Bit(4) != 0 {
		t.Fatal("SetBit affected neighboring bits")
	}
}
