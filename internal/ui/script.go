package ui

// idleBeaconScript reports user interactions to the inactivity monitor.
// Interactions are throttled to one beacon per 30 seconds; each page load
// already counts as an interaction server-side, so the beacon only matters
// while the user dwells on a page. The CSRF token comes from the meta tag
// appPage renders and travels in the X-CSRF-Token header, since sendBeacon
// cannot set headers.
const idleBeaconScript = `(function(){
  var last=0;
  var interval=30000;
  var meta=document.querySelector('meta[name="csrf-token"]');
  var token=meta?meta.content:'';
  function beacon(){
    var now=Date.now();
    if(now-last<interval){ return; }
    last=now;
    try {
      fetch('/session/touch',{
        method:'POST',
        credentials:'same-origin',
        keepalive:true,
        headers:{'X-CSRF-Token':token}
      });
    } catch (_) {}
  }
  ['mousemove','keydown','click','scroll'].forEach(function(ev){
    window.addEventListener(ev, beacon, {passive:true});
  });
})();`
