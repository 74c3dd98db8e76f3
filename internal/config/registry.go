package config

// HiveAbbreviation maps a document hive name to the short form the
// Windows registry tooling expects on its command line.
func HiveAbbreviation(hive string) string {
	switch hive {
	case "HKEY_LOCAL_MACHINE":
		return "HKLM"
	case "HKEY_CURRENT_USER":
		return "HKCU"
	default:
		return hive
	}
}
