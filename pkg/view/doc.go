// Package view implements the advocate search client.
//
// The view is driven by a pure reducer (Reduce) over State. Input events
// produce effects that tell the Controller whether to schedule a debounced
// fetch, fetch immediately, or do nothing. Each issued fetch carries a
// sequence number and results older than the last applied response are
// dropped, so a slow reply can never replace newer rows.
//
// Basic usage:
//
//	client := view.NewClient("http://localhost:3000", nil)
//	ctrl := view.NewController(client, view.ControllerOptions{
//		OnChange: func(s view.State) { view.RenderTable(os.Stdout, s) },
//	})
//	defer ctrl.Close()
//
//	ctrl.Mount()
//	ctrl.SetQuery("cardiology")
package view
