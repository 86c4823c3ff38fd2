package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/epinet/bfs"
	"github.com/katalvlaran/epinet/network"
)

// chain builds a directed network from "a>b" style pairs.
func chain(t *testing.T, links ...[2]string) *network.Network[string] {
	t.Helper()
	net := network.New[string]("test")
	for _, l := range links {
		for _, k := range l {
			if !net.IsEnrolled(k) {
				if _, err := net.Enroll(k); err != nil {
					t.Fatalf("Enroll(%s): %v", k, err)
				}
			}
		}
		if _, err := net.CreateLinkTo(l[0], l[1]); err != nil {
			t.Fatalf("CreateLinkTo(%s,%s): %v", l[0], l[1], err)
		}
	}
	return net
}

// TestWalk_Errors verifies that invalid inputs and options are rejected.
func TestWalk_Errors(t *testing.T) {
	if _, err := bfs.Walk[string](nil, []string{"A"}); !errors.Is(err, bfs.ErrNetworkNil) {
		t.Errorf("nil network: want ErrNetworkNil, got %v", err)
	}
	net := chain(t, [2]string{"A", "B"})
	if _, err := bfs.Walk(net, []string{"missing"}); !errors.Is(err, bfs.ErrNoSources) {
		t.Errorf("missing source: want ErrNoSources, got %v", err)
	}
	if _, err := bfs.Walk(net, nil); !errors.Is(err, bfs.ErrNoSources) {
		t.Errorf("no sources: want ErrNoSources, got %v", err)
	}
	if _, err := bfs.Walk(net, []string{"A"}, bfs.WithMaxDepth[string](-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
	if _, err := bfs.Walk(net, []string{"A"}, bfs.WithDirection[string](7)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("bad direction: want ErrOptionViolation, got %v", err)
	}
}

// TestWalk_ForwardAndBackward checks that direction picks the link lists.
func TestWalk_ForwardAndBackward(t *testing.T) {
	// A→B→C, D→B
	net := chain(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"D", "B"})

	fwd, err := bfs.Walk(net, []string{"B"})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if want := []string{"B", "C"}; !reflect.DeepEqual(fwd.Order, want) {
		t.Errorf("forward Order = %v; want %v", fwd.Order, want)
	}

	back, err := bfs.Walk(net, []string{"B"}, bfs.WithDirection[string](bfs.Backward))
	if err != nil {
		t.Fatalf("backward: %v", err)
	}
	if want := []string{"B", "A", "D"}; !reflect.DeepEqual(back.Order, want) {
		t.Errorf("backward Order = %v; want %v", back.Order, want)
	}
	if back.Reached("C") {
		t.Error("backward walk must not follow outgoing links")
	}
}

// TestWalk_DepthsAndPaths covers depth layering, MaxDepth and PathTo.
func TestWalk_DepthsAndPaths(t *testing.T) {
	// A→B→C→D plus shortcut A→C
	net := chain(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"}, [2]string{"A", "C"})

	res, err := bfs.Walk(net, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	wantDepth := map[string]int{"A": 0, "B": 1, "C": 1, "D": 2}
	if !reflect.DeepEqual(res.Depth, wantDepth) {
		t.Errorf("Depth = %v; want %v", res.Depth, wantDepth)
	}
	path, err := res.PathTo("D")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "C", "D"}; !reflect.DeepEqual(path, want) {
		t.Errorf("PathTo(D) = %v; want %v", path, want)
	}
	if got := res.AtDepth(1); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("AtDepth(1) = %v", got)
	}

	limited, err := bfs.Walk(net, []string{"A"}, bfs.WithMaxDepth[string](1))
	if err != nil {
		t.Fatal(err)
	}
	if limited.Reached("D") {
		t.Error("MaxDepth(1) reached depth 2")
	}
	if _, err := limited.PathTo("D"); err == nil {
		t.Error("PathTo unreached member: want error")
	}
}

// TestWalk_MultiSource seeds several index cases at depth 0.
func TestWalk_MultiSource(t *testing.T) {
	net := chain(t, [2]string{"A", "B"}, [2]string{"C", "D"}, [2]string{"D", "E"})

	res, err := bfs.Walk(net, []string{"A", "C", "A", "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "C", "B", "D", "E"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	if _, ok := res.Parent["C"]; ok {
		t.Error("sources must have no parent")
	}
}

// TestWalk_FilterAndHooks checks neighbor filtering, OnVisit abort and cancellation.
func TestWalk_FilterAndHooks(t *testing.T) {
	net := chain(t, [2]string{"A", "B"}, [2]string{"A", "C"}, [2]string{"C", "D"})

	res, err := bfs.Walk(net, []string{"A"},
		bfs.WithFilterNeighbor(func(_, nbr string) bool { return nbr != "C" }))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("filtered Order = %v; want %v", res.Order, want)
	}

	stop := errors.New("stop")
	_, err = bfs.Walk(net, []string{"A"}, bfs.WithOnVisit(func(k string, _ int) error {
		if k == "C" {
			return stop
		}
		return nil
	}))
	if !errors.Is(err, stop) {
		t.Errorf("OnVisit abort: want stop, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := bfs.Walk(net, []string{"A"}, bfs.WithContext[string](ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: want context.Canceled, got %v", err)
	}
}
