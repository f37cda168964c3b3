// Package fault routes errors to handlers registered per [Kind] and renders
// the user-facing side of a failure: transient toasts, blocking alerts and an
// error boundary with a retry affordance.
//
// A [Service] is created explicitly and owned by the application shell:
//
//	svc := fault.New(fault.WithSurface(page), fault.WithLogger(logger))
//	svc.Init()
//
//	_ = svc.Register(fault.KindNetwork, func(ctx context.Context, r *fault.Report) error {
//	    return page.Alert(ctx, "You appear to be offline.")
//	})
//
//	svc.Handle(ctx, fault.KindNetwork, err)
//
// Registration overwrites: the last handler registered for a kind wins.
// Kinds without a handler, and handlers that fail, fall back to the default
// handler, which logs a structured [Report] and shows a dismissible toast
// that expires after five seconds.
//
// Two hooks feed the same dispatch path: [Service.Recover] turns panics into
// [KindUncaught] reports, and [Service.Go] turns errors returned from
// background work into [KindRejection] reports. [Service.Middleware] applies
// the same treatment to HTTP handlers.
package fault
