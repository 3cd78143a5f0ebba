package materializer

import (
	"instanceforge/pkg/instance"
	"instanceforge/pkg/mrpack"
)

// AutoInstallResult carries both the instance handle and the inferred
// mrpack metadata from a single materialize-then-install call.
type AutoInstallResult struct {
	Handle  *instance.InstanceHandle
	Install *mrpack.InstallResult
}

// AutoInstall materializes a new instance skeleton under root and then
// installs archivePath into it in one call, grounded on
// original_source/src/launcher_support.rs::auto_install_instance. It is
// a convenience composition of Materialize (C6) and mrpack.Install (C7);
// the Minecraft version and loader used to pick the per-family document
// shape come from the mrpack itself rather than from the caller, so
// Materialize runs a second time internally to reconcile the
// initially-unknown version/loader fields once they're known.
func AutoInstall(root instance.LauncherRoot, name, archivePath string) (*AutoInstallResult, error) {
	skeleton, err := Materialize(Request{
		Root:             root,
		Name:             name,
		MinecraftVersion: "",
		Loader:           instance.LoaderVanilla,
	})
	if err != nil {
		return nil, err
	}

	installed, err := mrpack.Install(archivePath, skeleton.Path)
	if err != nil {
		return nil, err
	}

	handle, err := Materialize(Request{
		Root:             root,
		Name:             name,
		MinecraftVersion: installed.MinecraftVersion,
		Loader:           installed.Loader,
		LoaderVersion:    installed.LoaderVersion,
	})
	if err != nil {
		return nil, err
	}

	return &AutoInstallResult{Handle: handle, Install: installed}, nil
}
