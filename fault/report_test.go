package fault

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func handleFromHelper(svc *Service) *Report {
	return svc.Handle(context.Background(), KindAPI, errors.New("bad gateway"))
}

func TestReportStack_StartsAtCaller(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	r := handleFromHelper(svc)

	first, _, _ := strings.Cut(r.Stack, "\n")
	if !strings.HasSuffix(first, ".handleFromHelper") {
		t.Errorf("first frame = %q, want handleFromHelper\n%s", first, r.Stack)
	}
	for _, internal := range []string{"fault.stackOf", "fault.(*Service).newReport", "fault.(*Service).Handle"} {
		if strings.Contains(r.Stack, internal) {
			t.Errorf("stack contains %s:\n%s", internal, r.Stack)
		}
	}
	if !strings.Contains(r.Stack, "TestReportStack_StartsAtCaller") {
		t.Errorf("stack missing the test frame:\n%s", r.Stack)
	}
}

func TestReportStack_KeepsPanicStack(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	pe := &PanicError{Value: "boom", Stack: []byte("goroutine 1 [running]:\nmain.crash()\n")}

	r := svc.Handle(context.Background(), KindUncaught, pe)
	if r.Stack != string(pe.Stack) {
		t.Errorf("Stack = %q, want the panic stack", r.Stack)
	}
}
