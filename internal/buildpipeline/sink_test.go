package buildpipeline

import "testing"

func TestEmitToleratesNilSinks(t *testing.T) {
	Emit(nil, Event{File: "a.orb"})
	Emit(NopSink, Event{File: "a.orb"})
	Emit(ChannelSink{}, Event{File: "a.orb"})
	Emit(FuncSink(nil), Event{File: "a.orb"})
}

func TestChannelSinkForwards(t *testing.T) {
	ch := make(chan Event, 2)
	sink := ChannelSink{Ch: ch}
	Emit(sink, Event{File: "a.orb", Phase: "scan", Status: StatusWorking})
	Emit(sink, Event{File: "a.orb", Status: StatusDone})
	close(ch)

	var got []Event
	for ev := range ch {
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Phase != "scan" || got[0].Status != StatusWorking {
		t.Errorf("unexpected first event: %+v", got[0])
	}
	if got[1].Phase != "" || got[1].Status != StatusDone {
		t.Errorf("unexpected second event: %+v", got[1])
	}
}

func TestFuncSink(t *testing.T) {
	var files []string
	sink := FuncSink(func(ev Event) { files = append(files, ev.File) })
	Emit(sink, Event{File: "a.orb"})
	Emit(sink, Event{File: "b.orb"})
	if len(files) != 2 || files[0] != "a.orb" || files[1] != "b.orb" {
		t.Fatalf("unexpected files: %v", files)
	}
}
