// Package types defines entries, their category labels and extension
// elements, the extension profile that declares which elements each entry
// kind accepts, and the Store and EntryTable interfaces with their errors.
//
// A kind is registered explicitly:
//
//	p := types.NewProfile()
//	err := p.DeclareKind(types.Kind{
//	    Type:     "contact",
//	    Category: types.NewCategory(types.SchemeKind, types.GPrefix+"contact"),
//	    Declare:  declareContactExtensions,
//	})
//
// Entries built against the profile then reject undeclared elements and
// extra singletons, and hand out live, typed views over their store:
//
//	emails := types.AllOf[*Email](entry)
//	err = emails.Append(&Email{Address: "a@x.com"})
package types
