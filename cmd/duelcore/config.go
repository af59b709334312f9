package main

import (
	"encoding/json"
	"io/ioutil"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/pkg/errors"
)

// battleSetup is the on-disk shape of a CLI battle config file: two script
// paths plus the same arena size / tick bound the programmatic
// BattleConfig carries, loaded the way the teacher's server/config package
// loads GameConfig (encoding/json + ioutil.ReadFile + assertion helpers).
type battleSetup struct {
	ScriptAPath string `json:"scriptA"`
	ScriptBPath string `json:"scriptB"`
	NameA       string `json:"nameA"`
	NameB       string `json:"nameB"`
	ArenaSize   int    `json:"arenaSize"`
	MaxTicks    int    `json:"maxTicks"`
}

func loadBattleSetup(path string) (battleSetup, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return battleSetup{}, errors.Wrapf(err, "reading battle config %s", path)
	}

	var setup battleSetup
	if err := json.Unmarshal(raw, &setup); err != nil {
		return battleSetup{}, errors.Wrapf(err, "parsing battle config %s", path)
	}

	if setup.ArenaSize == 0 {
		setup.ArenaSize = 10
	}
	if setup.MaxTicks == 0 {
		setup.MaxTicks = 500
	}
	if setup.NameA == "" {
		setup.NameA = petname.Generate(2, "-")
	}
	if setup.NameB == "" {
		setup.NameB = petname.Generate(2, "-")
	}

	return setup, nil
}
