package messages

// System messages for platform resolution, installation, and dispatch.
const (
	// PlatformUnsupportedFmt reports an OS type or architecture outside the release matrix.
	PlatformUnsupportedFmt = "Unsupported OS: %s %s"
	PlatformUnameFailedFmt = "query os type: %w"

	// ReleaseDecodeManifestFmt formats package metadata decode errors.
	ReleaseDecodeManifestFmt    = "decode package metadata: %w"
	ReleaseManifestFieldFmt     = "package metadata is missing %q"
	ReleaseInvalidVersionFmt    = "package metadata version %q is not a release version"
	ReleaseResolveExecutableFmt = "resolve shim location: %w"
	ReleaseInstallRootRequired  = "install root is required"

	// InstallConfigRequired indicates the installer was called without a config.
	InstallConfigRequired        = "install config is required"
	InstallBinaryPathRequired    = "binary path is required"
	InstallErrorFmt              = "%s %s: %v"
	InstallFetchFailedFmt        = "Error fetching release: %v\n"
	InstallAlreadyInstalledFmt   = "%s is already installed, skipping installation.\n"
	InstallDownloadingFmt        = "Downloading release from %s\n"
	InstallInstalledFmt          = "%s has been installed!\n"
	InstallUninstalledFmt        = "%s has been uninstalled.\n"
	InstallNotInstalledFmt       = "%s is not installed.\n"
	InstallProgressDescription   = "downloading"
	InstallCheckBinaryFmt        = "check binary %s: %w"
	InstallRemoveDirFmt          = "remove install dir %s: %w"
	InstallCreateDirFmt          = "create install dir %s: %w"
	InstallCreateRequestFmt      = "create request: %w"
	InstallRequestFailedFmt      = "request %s: %w"
	InstallUnexpectedStatusFmt   = "unexpected status %s"
	InstallRateLimitedFmt        = "release host rate limit exceeded (%s, remaining=%s)"
	InstallRetryExhausted        = "retry budget exhausted"
	InstallOpenRootFmt           = "open install dir %s: %w"
	InstallGzipFmt               = "open gzip stream: %w"
	InstallReadEntryFmt          = "read archive entry: %w"
	InstallIllegalPathFmt        = "illegal path in archive: %s"
	InstallIllegalLinkFmt        = "illegal link target in archive: %s -> %s"
	InstallCreateEntryDirFmt     = "create directory %s: %w"
	InstallWriteEntryFmt         = "write %s: %w"
	InstallLinkEntryFmt          = "link %s: %w"
	InstallBinaryNotInArchive    = "binary not found in archive"
	InstallBinaryNotInArchiveFmt = "%w: expected %q at the archive root"
	InstallRenameBinaryFmt       = "move %s into place: %w"
	InstallChmodBinaryFmt        = "chmod %s: %w"
	InstallOpenLockFmt           = "open lock %s: %w"
	InstallLockFmt               = "lock %s: %w"
	InstallLockTimeoutFmt        = "timed out waiting for lock after %s"

	// DispatchConfigRequired indicates the runner was called without a config.
	DispatchConfigRequired    = "dispatch config is required"
	DispatchSystemRequired    = "dispatch system is required"
	DispatchWorkingDirFmt     = "resolve working directory: %w"
	DispatchCheckInstalledFmt = "check installed binary %s: %w"
	DispatchSpawnFailedFmt    = "spawn %s: %v\n"
)
