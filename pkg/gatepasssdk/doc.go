/*
Package gatepasssdk is a client for the gatepass invitation service.

Issuing desk:

	client := gatepasssdk.NewClient("http://door.local:8080")
	client.Token = deskToken // optional, only when the server checks station tokens

	inv, err := client.Issue(ctx, "Alice")
	png, filename, err := client.QR(ctx, inv.Code, 0, true)

Door scanner:

	res, err := client.Redeem(ctx, scannedText)
	switch res.Outcome {
	case gatepasssdk.OutcomeGranted:
		// open the door
	case gatepasssdk.OutcomeAlreadyUsed, gatepasssdk.OutcomeUnknown:
		// refuse entry, show res.Message
	}

Any error from Redeem means the server could not adjudicate the scan and
entry must be refused.
*/
package gatepasssdk
