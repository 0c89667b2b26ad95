package chaincontext

import "testing"

func TestSynthesizeBlockFromNilTip(t *testing.T) {
	b := SynthesizeBlock(nil)
	if b.Height != 1 {
		t.Errorf("Height = %d, want 1", b.Height)
	}
	if b.TimestampMS != SecondsPerBlock*1000 {
		t.Errorf("TimestampMS = %d, want %d", b.TimestampMS, SecondsPerBlock*1000)
	}
	if b.ConsensusData != 0 {
		t.Error("ConsensusData should be zero on a synthesized block")
	}
}

func TestSynthesizeBlockChaining(t *testing.T) {
	tip := Tip()
	next := SynthesizeBlock(tip)
	next2 := SynthesizeBlock(next)

	if next2.Height != 2 {
		t.Errorf("Height = %d, want 2", next2.Height)
	}
	if next2.PreviousBlockHash != next.Hash() {
		t.Error("PreviousBlockHash should equal the parent's hash")
	}
	if next2.TimestampMS != 2*SecondsPerBlock*1000 {
		t.Errorf("TimestampMS = %d, want %d", next2.TimestampMS, 2*SecondsPerBlock*1000)
	}
}

func TestSynthesizeBlockCopiesNextConsensus(t *testing.T) {
	tip := Tip()
	tip.NextConsensusProgram = []byte{0xAB, 0xCD}
	next := SynthesizeBlock(tip)
	if string(next.NextConsensusProgram) != string(tip.NextConsensusProgram) {
		t.Error("NextConsensusProgram should be copied from tip")
	}
}
