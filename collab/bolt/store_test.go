package bolt

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/Allan0411/Notes-API/collab/testutil"
)

func createDriver(t *testing.T) (*Driver, func()) {
	tmpFile, err := ioutil.TempFile("", "")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}

	filename := tmpFile.Name()
	driver := &Driver{}
	err = driver.Open(filename)
	if err != nil {
		os.Remove(filename)
		t.Fatal("could not open db:", err)
	}

	return driver, func() {
		driver.Close()
		os.Remove(filename)
	}
}

func TestInviteRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	repo := InviteRepository{Driver: driver}
	memberships := MembershipRepository{Driver: driver}
	testutil.TestInviteRepository(t, &repo, &memberships)
}

func TestMembershipRepository(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	repo := MembershipRepository{Driver: driver}
	testutil.TestMembershipRepository(t, &repo)
}
