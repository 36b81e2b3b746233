// Package client implements the server-session orchestration engine for a
// remote FHIR endpoint.
//
// A Server lazily fetches the endpoint's capability statement exactly
// once, selects an authorization strategy from static settings or the
// discovered security descriptor, and gates all signed requests behind a
// readiness check:
//
//	server, _ := client.New("https://fhir.example.com/r4",
//		client.WithSettings(map[string]any{"client_id": "demo"}))
//	if err := server.Ready(ctx); err != nil { ... }
//	outcome := server.Perform(ctx, "Patient/123", client.NewReadHandler())
//
// Named server operations advertised by the capability statement resolve
// through a per-session cache and execute through the same pipeline:
//
//	outcome := server.PerformOperation(ctx, &client.OperationCall{
//		Name: "everything", ResourceType: "Patient", InstanceID: "123",
//	})
//
// All failures surface as explicit errors or not-sent outcomes; request
// completion is not bound to any particular goroutine.
package client
