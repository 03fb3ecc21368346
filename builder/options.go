package builder

type Options struct {
	// Packages is the list of package directories to transform.
	Packages []string

	// Output is the staging directory the transformed sources are written
	// to. It is created if it does not exist.
	Output string

	// Layout optionally names a memory layout document. It overrides any
	// //arm9:layout pragma found in the sources.
	Layout string

	BuildTags []string
}
