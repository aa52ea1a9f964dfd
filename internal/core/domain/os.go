package domain

// OS discriminates the host platforms relocation cares about.
type OS int

const (
	// OSOther is any platform without specific relocation support.
	OSOther OS = iota
	// OSLinux is Linux (ELF, $ORIGIN rpaths).
	OSLinux
	// OSMacOS is macOS (Mach-O, install names).
	OSMacOS
)

// String returns the lowercase platform name.
func (o OS) String() string {
	switch o {
	case OSLinux:
		return "linux"
	case OSMacOS:
		return "macos"
	default:
		return "other"
	}
}

// ParseOS maps a GOOS value to an OS.
func ParseOS(goos string) OS {
	switch goos {
	case "linux":
		return OSLinux
	case "darwin":
		return OSMacOS
	default:
		return OSOther
	}
}
