//
// Copyright (c) 2026 Harmony Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package harmonycfg

import "testing"

func TestAppParsesFlagsAndPositionalFiles(t *testing.T) {
	cfg := New()
	app := App(cfg)
	args := []string{"harmony", "-a", "-b", "-c", "N=3", "-m", "foo=2", "-seed", "42", "prog.hny"}
	if err := app.Run(args); err != nil {
		t.Fatal(err)
	}
	if !cfg.Listing || !cfg.Blocking {
		t.Fatalf("expected -a and -b to be set, got %+v", cfg)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.Constants["N"] != "3" {
		t.Fatalf("expected constant N=3, got %q", cfg.Constants["N"])
	}
	if cfg.ModuleVersions["foo"] != "2" {
		t.Fatalf("expected module version foo=2, got %q", cfg.ModuleVersions["foo"])
	}
	if len(cfg.Files) != 1 || cfg.Files[0] != "prog.hny" {
		t.Fatalf("expected one positional file, got %+v", cfg.Files)
	}
}

func TestAppRequiresAtLeastOneFile(t *testing.T) {
	cfg := New()
	app := App(cfg)
	if err := app.Run([]string{"harmony"}); err == nil {
		t.Fatal("expected an error when no program file is given")
	}
}
