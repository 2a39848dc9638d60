package messages

// CLI messages for the install lifecycle command.
const (
	// RootUse is the install CLI command name.
	RootUse          = "xmit-install"
	RootShort        = "Manage the locally installed xmit release"
	RootFlagDir      = "Install root directory (defaults to the directory containing the shim)"
	RootFlagVerbose  = "Emit debug logs to stderr"
	RootExpandDirFmt = "expand --dir %q: %w"

	// VersionTemplate renders the root --version output.
	VersionTemplate = "{{.Version}}\n"

	// InstallUse is the install subcommand name.
	InstallUse         = "install"
	InstallShort       = "Download and extract the release for this platform"
	InstallFlagQuiet   = "Suppress progress notices"
	InstallFlagHeader  = "Extra HTTP header for the download request (KEY=VALUE, repeatable)"
	InstallFlagTimeout = "Download timeout (0 disables the timeout)"
	InstallHeaderFmt   = "invalid --header %q: expected KEY=VALUE"

	// UninstallUse is the uninstall subcommand name.
	UninstallUse       = "uninstall"
	UninstallShort     = "Remove the installed release for this platform"
	UninstallFlagYes   = "Remove without asking for confirmation"
	UninstallPromptFmt = "Remove %s?"
	UninstallAborted   = "Uninstall cancelled."

	// PathUse is the path subcommand name.
	PathUse   = "path"
	PathShort = "Print the path of the installed binary"

	// InfoUse is the info subcommand name.
	InfoUse           = "info"
	InfoShort         = "Show the resolved release target and install state"
	InfoNameFmt       = "name:        %s\n"
	InfoVersionFmt    = "version:     %s\n"
	InfoPlatformFmt   = "platform:    %s\n"
	InfoURLFmt        = "url:         %s\n"
	InfoInstallDirFmt = "install dir: %s\n"
	InfoBinaryFmt     = "binary:      %s\n"
	InfoInstalledFmt  = "installed:   %t\n"
)
